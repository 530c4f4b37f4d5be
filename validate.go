package cronner

import (
	"fmt"
	"time"
)

// RuleAnalysis describes a rule without scheduling anything.
type RuleAnalysis struct {
	// Valid is true when the text compiled.
	Valid bool

	// Error is the compile error when Valid is false.
	Error error

	// Rule is the compiled rule, nil when Valid is false.
	Rule *Rule

	// Fields maps field names ("second" ... "year") to their text after the
	// seconds and year defaults are filled in. Empty when the field count
	// is wrong.
	Fields map[string]string

	// Either is true when day of month and day of week are both restricted,
	// so a day matches when either of them does.
	Either bool

	// NextRun is the first firing time after the analysis start, zero when
	// Found is false.
	NextRun time.Time
	Found   bool

	// Warnings lists constructs that compile but probably do not do what
	// the author expects.
	Warnings []string
}

// ValidateRule compiles text with the default compiler and returns the
// error, if any.
func ValidateRule(text string) error {
	_, err := Compile(text)
	return err
}

// ValidateRules compiles each text and returns the errors keyed by index.
// The map is empty, not nil, when every rule is valid.
func ValidateRules(texts []string) map[int]error {
	errs := make(map[int]error)
	for i, text := range texts {
		if err := ValidateRule(text); err != nil {
			errs[i] = err
		}
	}
	return errs
}

// AnalyzeRule compiles text with the default compiler and reports its
// fields, its next firing time after from, and warnings.
func AnalyzeRule(text string, from time.Time) RuleAnalysis {
	return DefaultCompiler().Analyze(text, from)
}

// Analyze is AnalyzeRule using c.
func (c Compiler) Analyze(text string, from time.Time) RuleAnalysis {
	result := RuleAnalysis{Fields: make(map[string]string)}

	if segments, err := normalizeSegments(text); err == nil {
		for i, segment := range segments {
			result.Fields[Field(i).String()] = segment
		}
	}

	rule, err := c.Compile(text)
	if err != nil {
		result.Error = err
		return result
	}
	result.Valid = true
	result.Rule = rule
	result.Either = rule.restricted(DayOfMonth) && rule.restricted(DayOfWeek)

	result.Warnings = append(result.Warnings, rule.boundWarnings()...)
	if result.Either {
		result.Warnings = append(result.Warnings,
			"day_of_month and day_of_week are both restricted: a day matches when either does")
	}
	if rule.yearsBefore(from.Year()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("year constraint lies entirely before %d", from.Year()))
	}

	result.NextRun, result.Found = rule.NextDate(from)
	if !result.Found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no occurrence found within %d iterations", rule.maxIterations))
	}
	return result
}

// boundWarnings flags values outside a field's natural range, which can
// never match, and range-steps, whose skip semantics surprise readers of
// standard cron.
func (r *Rule) boundWarnings() []string {
	var warnings []string
	for i := range r.fields {
		f := Field(i)
		b := fieldBounds[f]
		for _, c := range r.fields[f] {
			var lo, hi int
			switch c.Kind {
			case KindExact:
				if c.Any {
					continue
				}
				lo, hi = c.Value, c.Value
			case KindRange, KindRangeStep:
				lo, hi = c.Low, c.High
				if lo > hi {
					warnings = append(warnings,
						fmt.Sprintf("%s range %d-%d is empty", f, external(f, lo), external(f, hi)))
					continue
				}
			default:
				continue
			}
			if hi < b.min || lo > b.max {
				warnings = append(warnings, fmt.Sprintf("%s value %s outside %d-%d never matches",
					f, describe(f, lo, hi), external(f, b.min), external(f, b.max)))
			}
			if c.Kind == KindRangeStep {
				warnings = append(warnings, fmt.Sprintf("%s range-step %d-%d/%d skips every %d%s value of the range",
					f, external(f, c.Low), external(f, c.High), c.Step, c.Step, ordinalSuffix(c.Step)))
			}
		}
	}
	return warnings
}

// yearsBefore reports whether every year constraint ends before year. Steps
// and wildcards are unbounded.
func (r *Rule) yearsBefore(year int) bool {
	for _, c := range r.fields[Year] {
		switch c.Kind {
		case KindExact:
			if c.Any || c.Value >= year {
				return false
			}
		case KindRange, KindRangeStep:
			if c.High >= year {
				return false
			}
		default:
			return false
		}
	}
	return len(r.fields[Year]) > 0
}

// external converts an internal value back to how it is written.
func external(f Field, v int) int {
	if f == Month {
		return v + 1
	}
	return v
}

func describe(f Field, lo, hi int) string {
	if lo == hi {
		return fmt.Sprint(external(f, lo))
	}
	return fmt.Sprintf("%d-%d", external(f, lo), external(f, hi))
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
