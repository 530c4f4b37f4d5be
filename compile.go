package cronner

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxIterations bounds the number of field tests a search performs
// before reporting that no occurrence exists.
const DefaultMaxIterations = 512

// MaxRuleLength is the maximum accepted length of rule text.
const MaxRuleLength = 1024

// shapes are tried in order; the first whose grammar matches wins, so later
// shapes may assume earlier ones failed.
var shapes = [...]struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindExact, regexp.MustCompile(`^(\d+|\*)$`)},
	{KindRange, regexp.MustCompile(`^(\d+)-(\d+)$`)},
	{KindStep, regexp.MustCompile(`^\*/(\d+)$`)},
	{KindRangeStep, regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)},
	{KindAbsoluteStep, regexp.MustCompile(`^(\d+)/(\d+)$`)},
}

// Compiler turns rule text into Rules. The zero value compiles with
// DefaultMaxIterations, no logging and no cache. The With methods each
// return a modified copy.
type Compiler struct {
	maxIterations int
	logger        Logger
	cache         *sync.Map // rule text -> cacheEntry
}

type cacheEntry struct {
	rule *Rule
	err  error
}

// NewCompiler returns a Compiler with the default iteration bound that
// logs nothing.
func NewCompiler() Compiler {
	return Compiler{
		maxIterations: DefaultMaxIterations,
		logger:        DiscardLogger,
	}
}

var defaultCompiler = NewCompiler()

// DefaultCompiler returns a copy of the compiler used by Compile.
func DefaultCompiler() Compiler {
	return defaultCompiler
}

// WithMaxIterations returns a Compiler whose rules give up after n field
// tests. Values <= 0 select DefaultMaxIterations.
func (c Compiler) WithMaxIterations(n int) Compiler {
	if n <= 0 {
		n = DefaultMaxIterations
	}
	c.maxIterations = n
	return c
}

// WithLogger returns a Compiler whose rules report exhausted searches to l.
// A nil l discards.
func (c Compiler) WithLogger(l Logger) Compiler {
	if l == nil {
		l = DiscardLogger
	}
	c.logger = l
	return c
}

// WithCache returns a Compiler that remembers the outcome of every text it
// compiles. Rules are immutable, so cached rules are shared between callers.
// The cache is safe for concurrent use and is never evicted.
func (c Compiler) WithCache() Compiler {
	c.cache = &sync.Map{}
	return c
}

// Compile parses text into a Rule. See Compiler.Compile.
func Compile(text string) (*Rule, error) {
	return defaultCompiler.Compile(text)
}

// MustCompile is like Compile but panics if the text cannot be compiled.
func MustCompile(text string) *Rule {
	r, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return r
}

// FromFields builds the rule "0 minutes hours dayOfMonth month dayOfWeek *"
// with the default compiler. See Compiler.FromFields.
func FromFields(minutes, hours, dayOfMonth, month, dayOfWeek int) (*Rule, error) {
	return defaultCompiler.FromFields(minutes, hours, dayOfMonth, month, dayOfWeek)
}

// FromFields builds a rule from positional values, where -1 stands for the
// wildcard. Seconds are fixed to 0 and the year to any. Month is 1-12 and
// day of week 0-7, as in rule text, so the result compiles to the same
// constraints as the equivalent text.
func (c Compiler) FromFields(minutes, hours, dayOfMonth, month, dayOfWeek int) (*Rule, error) {
	segments := []string{"0"}
	for _, v := range []int{minutes, hours, dayOfMonth, month, dayOfWeek} {
		if v == -1 {
			segments = append(segments, "*")
			continue
		}
		segments = append(segments, strconv.Itoa(v))
	}
	segments = append(segments, "*")
	return c.Compile(strings.Join(segments, " "))
}

// Compile parses text into a Rule.
//
// Text holds five, six or seven space-separated fields:
//
//	[second] minute hour day-of-month month day-of-week [year]
//
// Five fields imply second "0" and year "*"; six fields imply year "*".
// Months are written 1-12, but step sizes count months and are not shifted:
// "*/3" in the month field is January, April, July and October.
// Each field is a comma-separated list of tokens, any of which may match:
//
//	N or *    exact value or any value
//	N-M       inclusive range
//	*/N       every Nth value counted from the field's zero
//	N-M/K     the range without every Kth value
//	T/K       every K days from T, Unix milliseconds (day of month only)
//
// It returns an error wrapping ErrInvalidSegmentCount when the field count
// is wrong, and a *PatternError naming the first token that cannot be used.
// No Rule is returned alongside an error.
func (c Compiler) Compile(text string) (*Rule, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Load(text); ok {
			if entry, ok := cached.(cacheEntry); ok {
				return entry.rule, entry.err
			}
		}
	}

	rule, err := c.compile(text)

	if c.cache != nil {
		c.cache.Store(text, cacheEntry{rule: rule, err: err})
	}
	return rule, err
}

func (c Compiler) compile(text string) (*Rule, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyRule
	}
	if len(text) > MaxRuleLength {
		return nil, fmt.Errorf("rule too long: %d > %d", len(text), MaxRuleLength)
	}

	segments, err := normalizeSegments(text)
	if err != nil {
		return nil, err
	}

	maxIterations := c.maxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	logger := c.logger
	if logger == nil {
		logger = DiscardLogger
	}

	rule := &Rule{
		text:          text,
		maxIterations: maxIterations,
		logger:        logger,
	}
	for i, segment := range segments {
		f := Field(i)
		for _, token := range strings.Split(segment, ",") {
			constraint, err := compileToken(f, token)
			if err != nil {
				return nil, err
			}
			rule.fields[f] = append(rule.fields[f], constraint)
		}
	}
	return rule, nil
}

// normalizeSegments splits text into exactly seven fields, filling in the
// seconds and year defaults.
func normalizeSegments(text string) ([]string, error) {
	segments := strings.Fields(text)
	found := len(segments)
	if len(segments) == 5 {
		segments = append([]string{"0"}, segments...)
	}
	if len(segments) == 6 {
		segments = append(segments, "*")
	}
	if len(segments) != fieldCount {
		return nil, fmt.Errorf("%w: expected 5 to 7 fields, found %d in %q",
			ErrInvalidSegmentCount, found, text)
	}
	return segments, nil
}

// compileToken matches token against each shape in priority order.
func compileToken(f Field, token string) (Constraint, error) {
	invalid := &PatternError{Field: f, Token: token}

	for _, shape := range shapes {
		m := shape.re.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		c := Constraint{Field: f, Kind: shape.kind}

		if shape.kind == KindAbsoluteStep {
			if f != DayOfMonth {
				return Constraint{}, invalid
			}
			anchor, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return Constraint{}, invalid
			}
			count, err := strconv.Atoi(m[2])
			if err != nil || count == 0 || int64(count) > math.MaxInt64/units[f].millis {
				return Constraint{}, invalid
			}
			c.Anchor, c.Step = anchor, count
			return c, nil
		}

		if shape.kind == KindExact && m[1] == "*" {
			c.Any = true
			return c, nil
		}

		nums := make([]int, 0, len(m)-1)
		for _, capture := range m[1:] {
			n, err := strconv.Atoi(capture)
			if err != nil {
				return Constraint{}, invalid
			}
			nums = append(nums, n)
		}

		switch shape.kind {
		case KindExact:
			c.Value = normalizeValue(f, nums[0])
			if f == DayOfWeek && c.Value == 7 {
				c.Value = 0
			}
		case KindRange:
			c.Low, c.High = normalizeValue(f, nums[0]), normalizeValue(f, nums[1])
		case KindStep:
			c.Step = nums[0]
		case KindRangeStep:
			c.Low, c.High = normalizeValue(f, nums[0]), normalizeValue(f, nums[1])
			c.Step = nums[2]
		}
		if (c.Kind == KindStep || c.Kind == KindRangeStep) && c.Step == 0 {
			return Constraint{}, invalid
		}
		return c, nil
	}
	return Constraint{}, invalid
}

// normalizeValue converts a value as written into internal terms. Step
// sizes are counts, not values, and are never passed through here.
func normalizeValue(f Field, v int) int {
	if f == Month {
		return v - 1
	}
	return v
}
