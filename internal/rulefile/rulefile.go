// Package rulefile loads named sets of recurrence rules from disk.
//
// Rule files are authored as YAML or as JSONC (JSON extended with comments
// and trailing commas):
//
//	max_iterations: 1024
//	rules:
//	  - name: backup
//	    rule: "0 30 2 * * * *"
//	    description: nightly backup
//
// The typical flow:
//
//  1. ReadFile or Parse: bytes to File
//  2. Validate: structural checks (names present and unique, rules present)
//  3. Compile: each entry to a *cronner.Rule
//  4. Evaluate: next firing time of every compiled rule
package rulefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/orangeswim/cronner"
)

// Format is the encoding of a rule file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions other than .yaml, .yml,
// .json and .jsonc.
var ErrUnknownFormat = errors.New("unknown rule file format")

// File is the content of a rule file.
type File struct {
	// MaxIterations overrides the search bound of every rule in the file
	// when positive.
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	Rules         []Entry `yaml:"rules" json:"rules"`
}

// Entry is one named rule.
type Entry struct {
	Name        string `yaml:"name" json:"name"`
	Rule        string `yaml:"rule" json:"rule"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Compiled pairs an entry with its compiled rule.
type Compiled struct {
	Entry
	Rule *cronner.Rule
}

// Result is the outcome of evaluating one compiled rule.
type Result struct {
	Name  string    `json:"name"`
	Rule  string    `json:"rule"`
	Next  time.Time `json:"next"`
	Found bool      `json:"found"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Parse decodes data in the given format. JSON input may carry // and /* */
// comments and trailing commas.
func Parse(data []byte, format Format) (*File, error) {
	var file File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing rule file: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("parsing rule file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &file, nil
}

// ReadFile reads and parses the rule file at path, choosing the format from
// its extension.
func ReadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Validate checks that every entry has a unique name and a rule. It does not
// compile the rules.
func (f *File) Validate() error {
	if len(f.Rules) == 0 {
		return errors.New("rule file has no rules")
	}
	if f.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must not be negative, got %d", f.MaxIterations)
	}

	var errs []error
	seen := make(map[string]int, len(f.Rules))
	for i, entry := range f.Rules {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("rules[%d]: name is required", i))
			continue
		}
		if first, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("rules[%d]: duplicate name %q (first used by rules[%d])", i, name, first))
			continue
		}
		seen[name] = i
		if strings.TrimSpace(entry.Rule) == "" {
			errs = append(errs, fmt.Errorf("rules[%d] %q: rule is required", i, name))
		}
	}
	return errors.Join(errs...)
}

// Compile validates the file and compiles every entry with c, applying the
// file's MaxIterations. All compile errors are reported together.
func (f *File) Compile(c cronner.Compiler) ([]Compiled, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.MaxIterations > 0 {
		c = c.WithMaxIterations(f.MaxIterations)
	}

	var errs []error
	compiled := make([]Compiled, 0, len(f.Rules))
	for _, entry := range f.Rules {
		rule, err := c.Compile(entry.Rule)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name, err))
			continue
		}
		compiled = append(compiled, Compiled{Entry: entry, Rule: rule})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return compiled, nil
}

// Evaluate computes the next firing time after from of every compiled rule,
// in parallel. Results keep the order of compiled.
func Evaluate(ctx context.Context, compiled []Compiled, from time.Time) ([]Result, error) {
	results := make([]Result, len(compiled))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range compiled {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			next, found := c.Rule.NextDate(from)
			results[i] = Result{Name: c.Name, Rule: c.Rule.String(), Next: next, Found: found}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
