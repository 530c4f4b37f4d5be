package cronner

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Rule is a compiled recurrence rule. It is immutable after compilation and
// safe for concurrent use; every search works on its own candidate.
type Rule struct {
	text          string
	fields        [fieldCount][]Constraint
	maxIterations int
	logger        Logger
}

// A Rule can be handed to a robfig/cron runner directly.
var _ cron.Schedule = (*Rule)(nil)

// String returns the text the rule was compiled from.
func (r *Rule) String() string {
	return r.text
}

// Constraints returns a copy of the constraints of field f.
func (r *Rule) Constraints(f Field) []Constraint {
	if f < 0 || f >= fieldCount {
		return nil
	}
	out := make([]Constraint, len(r.fields[f]))
	copy(out, r.fields[f])
	return out
}

// MaxIterations returns the search bound of the rule.
func (r *Rule) MaxIterations() int {
	return r.maxIterations
}

// walk is the order in which the search tests fields, coarsest first.
// Day of month and day of week share a calendar field and sit together.
var walk = [...]Field{Year, Month, DayOfMonth, DayOfWeek, Hour, Minute, Second}

// Next returns the next time the rule fires strictly after from, or the
// zero time if none is found within the iteration bound.
func (r *Rule) Next(from time.Time) time.Time {
	next, _ := r.NextDate(from)
	return next
}

// NextDate returns the next time the rule fires strictly after from. The
// search starts one whole second after from and reads calendar fields in
// from's location. A wall time that a backward zone transition repeats
// resolves to whichever occurrence follows from. It reports false when the
// iteration bound is exhausted, which is the normal outcome for rules that
// can never fire again, such as a year in the past or February 30.
//
// When both day of month and day of week are restricted, a day matches if
// either of them does; otherwise both must.
func (r *Rule) NextDate(from time.Time) (time.Time, bool) {
	start := from.Add(time.Second - time.Duration(from.Nanosecond()))
	c := newInstant(start)
	either := r.restricted(DayOfMonth) && r.restricted(DayOfWeek)

	pos := 0
	for i := 0; i < r.maxIterations; i++ {
		f := walk[pos]
		if r.dayMatches(c, f, either) {
			pos++
			if either && pos < len(walk) && walk[pos] == DayOfWeek {
				pos++
			}
			if pos == len(walk) {
				next := c.time()
				if next.After(from) {
					return next, true
				}
				if later, ok := c.repeatedAfter(from); ok {
					return later, true
				}
				c.incSecond()
				pos = 0
			}
			continue
		}

		u := units[f]
		rolled := u.increment(c)
		c.resetBelow(u.rank)
		if rolled {
			pos = 0
		}
	}

	if r.logger != nil {
		r.logger.Info("no occurrence found",
			"rule", r.text, "from", from, "iterations", r.maxIterations)
	}
	return time.Time{}, false
}

// NextFromNow is NextDate from the clock's current time. A nil clock reads
// the system time.
func (r *Rule) NextFromNow(clock Clock) (time.Time, bool) {
	if clock == nil {
		clock = RealClock{}
	}
	return r.NextDate(clock.Now())
}

// dayMatches tests field f, folding day of week into day of month in either
// mode.
func (r *Rule) dayMatches(c *instant, f Field, either bool) bool {
	if either && f == DayOfMonth {
		return r.matches(c, DayOfMonth) || r.matches(c, DayOfWeek)
	}
	return r.matches(c, f)
}

// Matches reports whether the rule fires at t, ignoring sub-second
// precision. An absolute-step day only matches at the exact multiple of its
// period, so for such rules Matches is stricter than NextDate, which tests
// the day at midnight before searching the time of day.
func (r *Rule) Matches(t time.Time) bool {
	c := newInstant(t)
	either := r.restricted(DayOfMonth) && r.restricted(DayOfWeek)
	for _, f := range walk {
		if either && f == DayOfWeek {
			continue
		}
		if !r.dayMatches(c, f, either) {
			return false
		}
	}
	return true
}
