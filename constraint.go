package cronner

// Kind is the shape a constraint was compiled from.
type Kind int

// Constraint shapes, in the priority order the compiler tries them.
const (
	KindExact        Kind = iota // "N" or "*"
	KindRange                    // "N-M"
	KindStep                     // "*/N"
	KindRangeStep                // "N-M/K"
	KindAbsoluteStep             // "T/K", day of month only
)

var kindNames = [...]string{"exact", "range", "step", "range-step", "absolute-step"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Constraint is one compiled token of a rule field. Values are stored in
// internal terms: months are zero-based and a day-of-week of 7 is Sunday.
type Constraint struct {
	Field Field
	Kind  Kind

	// Any is set for the "*" wildcard.
	Any bool

	// Value is the exact value of a KindExact constraint.
	Value int

	// Low and High bound KindRange and KindRangeStep, inclusive.
	Low, High int

	// Step is the modulus of KindStep, KindRangeStep and KindAbsoluteStep.
	// For KindAbsoluteStep it counts field units.
	Step int

	// Anchor is the KindAbsoluteStep origin in Unix milliseconds.
	Anchor int64
}

// Matches reports whether v satisfies the constraint. Absolute-step
// constraints depend on the whole instant and never match a lone value.
//
// A range-step constraint skips every Step-th value of its range: "2-12/3"
// matches 2,3,5,6,8,9,11,12.
func (c Constraint) Matches(v int) bool {
	switch c.Kind {
	case KindExact:
		return c.Any || v == c.Value
	case KindRange:
		return c.Low <= v && v <= c.High
	case KindStep:
		return v%c.Step == 0
	case KindRangeStep:
		return c.Low <= v && v <= c.High && (v-c.Low+1)%c.Step != 0
	}
	return false
}

func (c Constraint) wildcard() bool {
	return c.Kind == KindExact && c.Any
}

func (c Constraint) matchesInstant(in *instant) bool {
	if c.Kind == KindAbsoluteStep {
		period := int64(c.Step) * units[c.Field].millis
		return (in.unixMilli()-c.Anchor)%period == 0
	}
	v := units[c.Field].get(in)
	if c.Field == DayOfWeek && v == 0 {
		// Ranges may spell Sunday as 7.
		return c.Matches(0) || c.Matches(7)
	}
	return c.Matches(v)
}

// matches reports whether any constraint of field f accepts the candidate.
func (r *Rule) matches(in *instant, f Field) bool {
	for _, c := range r.fields[f] {
		if c.matchesInstant(in) {
			return true
		}
	}
	return false
}

// restricted reports whether field f holds a constraint other than the
// bare wildcard. Either mode needs both day fields restricted.
func (r *Rule) restricted(f Field) bool {
	for _, c := range r.fields[f] {
		if !c.wildcard() {
			return true
		}
	}
	return false
}
