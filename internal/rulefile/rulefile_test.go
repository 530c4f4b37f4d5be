package rulefile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangeswim/cronner"
)

const yamlRules = `
max_iterations: 2048
rules:
  - name: backup
    rule: "0 30 2 * * * *"
    description: nightly backup
  - name: payroll
    rule: "0 0 12 1,15 * 1 *"
`

const jsoncRules = `{
  // same rules, JSONC flavour
  "rules": [
    {"name": "backup", "rule": "0 30 2 * * * *"},
    /* trailing commas are fine */
    {"name": "payroll", "rule": "0 0 12 1,15 * 1 *",},
  ],
}`

func TestParseYAML(t *testing.T) {
	file, err := Parse([]byte(yamlRules), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 2048, file.MaxIterations)
	require.Len(t, file.Rules, 2)
	assert.Equal(t, Entry{Name: "backup", Rule: "0 30 2 * * * *", Description: "nightly backup"}, file.Rules[0])
	assert.Equal(t, "payroll", file.Rules[1].Name)
}

func TestParseJSONC(t *testing.T) {
	file, err := Parse([]byte(jsoncRules), FormatJSON)
	require.NoError(t, err)

	require.Len(t, file.Rules, 2)
	assert.Equal(t, "0 0 12 1,15 * 1 *", file.Rules[1].Rule)
	assert.Zero(t, file.MaxIterations)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("rules: [unterminated"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"rules": 3}`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"rules.yaml":     FormatYAML,
		"rules.YML":      FormatYAML,
		"a/b/c.json":     FormatJSON,
		"schedule.jsonc": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("rules.toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(jsoncRules), 0o600))

	file, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, file.Rules, 2)

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr string
	}{
		{"valid", File{Rules: []Entry{{Name: "a", Rule: "* * * * *"}}}, ""},
		{"empty", File{}, "no rules"},
		{"negative bound", File{MaxIterations: -1, Rules: []Entry{{Name: "a", Rule: "* * * * *"}}}, "must not be negative"},
		{"missing name", File{Rules: []Entry{{Rule: "* * * * *"}}}, "rules[0]: name is required"},
		{"duplicate", File{Rules: []Entry{{Name: "a", Rule: "* * * * *"}, {Name: "a", Rule: "0 * * * *"}}}, `duplicate name "a"`},
		{"missing rule", File{Rules: []Entry{{Name: "a", Rule: "  "}}}, "rule is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompile(t *testing.T) {
	file, err := Parse([]byte(yamlRules), FormatYAML)
	require.NoError(t, err)

	compiled, err := file.Compile(cronner.NewCompiler())
	require.NoError(t, err)
	require.Len(t, compiled, 2)

	assert.Equal(t, "backup", compiled[0].Name)
	assert.Equal(t, 2048, compiled[0].Rule.MaxIterations())
	assert.Equal(t, "0 30 2 * * * *", compiled[0].Rule.String())
}

func TestCompileReportsEveryError(t *testing.T) {
	file := File{Rules: []Entry{
		{Name: "ok", Rule: "* * * * *"},
		{Name: "dow", Rule: "* * * * * 1/3 *"},
		{Name: "short", Rule: "* *"},
	}}

	compiled, err := file.Compile(cronner.NewCompiler())
	require.Error(t, err)
	assert.Nil(t, compiled)

	var pe *cronner.PatternError
	assert.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, cronner.ErrInvalidSegmentCount)
	assert.Contains(t, err.Error(), "dow: invalid pattern '1/3' in day_of_week")
}

func TestEvaluate(t *testing.T) {
	file, err := Parse([]byte(yamlRules+"  - name: never\n    rule: \"0 0 0 30 2 * *\"\n"), FormatYAML)
	require.NoError(t, err)
	compiled, err := file.Compile(cronner.NewCompiler())
	require.NoError(t, err)

	from := time.Date(2020, 2, 4, 0, 0, 0, 0, time.UTC)
	results, err := Evaluate(context.Background(), compiled, from)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Result{Name: "backup", Rule: "0 30 2 * * * *", Next: time.Date(2020, 2, 4, 2, 30, 0, 0, time.UTC), Found: true}, results[0])
	assert.Equal(t, time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC), results[1].Next)
	assert.False(t, results[2].Found)
	assert.True(t, results[2].Next.IsZero())
}

func TestEvaluateCancelled(t *testing.T) {
	compiled := []Compiled{{Entry: Entry{Name: "a"}, Rule: cronner.MustCompile("* * * * *")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, compiled, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
