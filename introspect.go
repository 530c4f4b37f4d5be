package cronner

import "time"

// Schedule is anything that can report its next firing time after a given
// time, returning the zero time when there is none. *Rule implements it, as
// does github.com/robfig/cron/v3's Schedule.
type Schedule interface {
	Next(time.Time) time.Time
}

// NextN returns up to n successive firing times after t. It stops early
// when the schedule runs out. It returns nil for a nil schedule or n <= 0.
//
// Example:
//
//	rule := cronner.MustCompile("0 0 9 * * 1-5 *")
//	for _, t := range cronner.NextN(rule, time.Now(), 5) {
//	    fmt.Println(t)
//	}
func NextN(s Schedule, t time.Time, n int) []time.Time {
	if s == nil || n <= 0 {
		return nil
	}

	times := make([]time.Time, 0, n)
	for range n {
		next := s.Next(t)
		if next.IsZero() {
			break
		}
		times = append(times, next)
		t = next
	}
	return times
}

// Between returns every firing time in [start, end). For frequent rules over
// long ranges prefer BetweenWithLimit.
func Between(s Schedule, start, end time.Time) []time.Time {
	return BetweenWithLimit(s, start, end, 0)
}

// BetweenWithLimit is Between returning at most limit times. A limit <= 0
// means no limit.
//
// The search runs from one second before start, so a firing exactly at start
// is included.
func BetweenWithLimit(s Schedule, start, end time.Time, limit int) []time.Time {
	if s == nil || !start.Before(end) {
		return nil
	}

	var times []time.Time
	if limit > 0 {
		times = make([]time.Time, 0, limit)
	}
	walkRange(s, start, end, func(t time.Time) bool {
		times = append(times, t)
		return limit <= 0 || len(times) < limit
	})
	return times
}

// Count returns the number of firing times in [start, end).
func Count(s Schedule, start, end time.Time) int {
	return CountWithLimit(s, start, end, 0)
}

// CountWithLimit is Count stopping at limit. A limit <= 0 means no limit.
func CountWithLimit(s Schedule, start, end time.Time, limit int) int {
	if s == nil || !start.Before(end) {
		return 0
	}

	count := 0
	walkRange(s, start, end, func(time.Time) bool {
		count++
		return limit <= 0 || count < limit
	})
	return count
}

// walkRange calls yield for each firing time in [start, end) until yield
// returns false.
func walkRange(s Schedule, start, end time.Time, yield func(time.Time) bool) {
	current := start.Truncate(time.Second).Add(-time.Second)
	for {
		next := s.Next(current)
		if next.IsZero() || !next.Before(end) {
			return
		}
		current = next
		if next.Before(start) {
			continue
		}
		if !yield(next) {
			return
		}
	}
}
