package cronner

import (
	"strconv"
	"time"
)

// Field identifies one of the seven calendar positions a rule constrains.
// The numeric order is the order of fields in rule text.
type Field int

// Field positions, in rule text order.
const (
	Second Field = iota
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
	Year
)

const fieldCount = 7

var fieldNames = [fieldCount]string{
	"second",
	"minute",
	"hour",
	"day_of_month",
	"month",
	"day_of_week",
	"year",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// bounds is the natural value range of a field, in internal (zero-based
// month) terms. Values outside it compile but can never match.
type bounds struct {
	min, max int
}

var fieldBounds = [fieldCount]bounds{
	Second:     {0, 59},
	Minute:     {0, 59},
	Hour:       {0, 23},
	DayOfMonth: {1, 31},
	Month:      {0, 11},
	DayOfWeek:  {0, 7},
	Year:       {1, 9999},
}

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// unit describes how the search reads and moves one field of a candidate.
// Day-of-week reads the weekday but mutates the same calendar day as
// day-of-month.
type unit struct {
	rank      int   // granularity; equal ranks share a calendar field
	millis    int64 // duration of one step, zero where it varies
	get       func(*instant) int
	increment func(*instant) bool // reports roll-over past the maximum
	reset     func(*instant)
}

var units = [fieldCount]unit{
	Second: {
		rank:      0,
		millis:    int64(time.Second / time.Millisecond),
		get:       func(c *instant) int { return c.second },
		increment: (*instant).incSecond,
		reset:     func(c *instant) { c.second = 0 },
	},
	Minute: {
		rank:      1,
		millis:    int64(time.Minute / time.Millisecond),
		get:       func(c *instant) int { return c.minute },
		increment: (*instant).incMinute,
		reset:     func(c *instant) { c.minute = 0 },
	},
	Hour: {
		rank:      2,
		millis:    int64(time.Hour / time.Millisecond),
		get:       func(c *instant) int { return c.hour },
		increment: (*instant).incHour,
		reset:     func(c *instant) { c.hour = 0 },
	},
	DayOfMonth: {
		rank:      3,
		millis:    dayMillis,
		get:       func(c *instant) int { return c.day },
		increment: (*instant).incDay,
		reset:     (*instant).resetDay,
	},
	Month: {
		rank:      4,
		get:       func(c *instant) int { return c.month },
		increment: (*instant).incMonth,
		reset:     func(c *instant) { c.month = 0 },
	},
	DayOfWeek: {
		rank:      3,
		millis:    dayMillis,
		get:       (*instant).weekday,
		increment: (*instant).incDay,
		reset:     (*instant).resetDay,
	},
	Year: {
		rank:      5,
		get:       func(c *instant) int { return c.year },
		increment: (*instant).incYear,
		reset:     func(*instant) {},
	},
}

// instant is the mutable candidate of one search. Fields are wall-clock
// values in loc; month is zero-based.
type instant struct {
	year, month, day     int
	hour, minute, second int
	loc                  *time.Location
}

func newInstant(t time.Time) *instant {
	return &instant{
		year:   t.Year(),
		month:  int(t.Month()) - 1,
		day:    t.Day(),
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
		loc:    t.Location(),
	}
}

func (c *instant) time() time.Time {
	return time.Date(c.year, time.Month(c.month+1), c.day, c.hour, c.minute, c.second, 0, c.loc)
}

// repeatedAfter returns the second occurrence of the candidate's wall time
// when a backward zone transition repeats it and only that occurrence is
// after t. time.Date always picks the first.
func (c *instant) repeatedAfter(t time.Time) (time.Time, bool) {
	first := c.time()
	_, off := first.Zone()
	_, tOff := t.In(c.loc).Zone()
	if off <= tOff {
		return time.Time{}, false
	}
	later := first.Add(time.Duration(off-tOff) * time.Second)
	if !later.After(t) || later.Hour() != c.hour || later.Minute() != c.minute || later.Second() != c.second {
		return time.Time{}, false
	}
	return later, true
}

func (c *instant) unixMilli() int64 {
	return c.time().UnixMilli()
}

func (c *instant) weekday() int {
	return int(time.Date(c.year, time.Month(c.month+1), c.day, 0, 0, 0, 0, time.UTC).Weekday())
}

func (c *instant) incSecond() bool {
	if c.second++; c.second <= 59 {
		return false
	}
	c.second = 0
	c.incMinute()
	return true
}

func (c *instant) incMinute() bool {
	if c.minute++; c.minute <= 59 {
		return false
	}
	c.minute = 0
	c.incHour()
	return true
}

func (c *instant) incHour() bool {
	if c.hour++; c.hour <= 23 {
		return false
	}
	c.hour = 0
	c.incDay()
	return true
}

func (c *instant) incDay() bool {
	if c.day++; c.day <= daysIn(c.month, c.year) {
		return false
	}
	c.day = 1
	c.incMonth()
	return true
}

// incMonth may leave day past the end of the new month; the search resets
// day right after any month increment.
func (c *instant) incMonth() bool {
	if c.month++; c.month <= 11 {
		return false
	}
	c.month = 0
	c.incYear()
	return true
}

// incYear always restarts the walk.
func (c *instant) incYear() bool {
	c.year++
	return true
}

func (c *instant) resetDay() {
	c.day = 1
}

// resetBelow resets every field finer than rank to its minimum.
func (c *instant) resetBelow(rank int) {
	for _, u := range units {
		if u.rank < rank {
			u.reset(c)
		}
	}
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysIn returns the length of the zero-based month in year.
func daysIn(month, year int) int {
	if month == 1 && isLeap(year) {
		return 29
	}
	return monthDays[month]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
