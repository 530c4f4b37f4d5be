package cronner

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{0, 2021, 31},
		{1, 2021, 28},
		{1, 2020, 29},
		{1, 1900, 28},
		{1, 2000, 29},
		{3, 2021, 30},
		{11, 2021, 31},
	}
	for _, tt := range tests {
		if got := daysIn(tt.month, tt.year); got != tt.want {
			t.Errorf("daysIn(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestInstantIncrementCarries(t *testing.T) {
	c := newInstant(date(2019, 12, 31, 23, 59, 59))
	if !c.incSecond() {
		t.Error("incSecond at 59 did not report roll-over")
	}
	if got := c.time(); !got.Equal(date(2020, 1, 1, 0, 0, 0)) {
		t.Errorf("after carry: %v", got)
	}

	c = newInstant(date(2019, 2, 28, 10, 0, 0))
	if !c.incDay() {
		t.Error("incDay on 2019-02-28 did not roll over")
	}
	if c.month != 2 || c.day != 1 {
		t.Errorf("2019-02-28 + 1 day = month %d day %d", c.month+1, c.day)
	}

	c = newInstant(date(2020, 2, 28, 10, 0, 0))
	if c.incDay() {
		t.Error("incDay on 2020-02-28 rolled over in a leap year")
	}
	if c.day != 29 {
		t.Errorf("day = %d, want 29", c.day)
	}

	c = newInstant(date(2020, 12, 15, 0, 0, 0))
	if !c.incMonth() || c.year != 2021 || c.month != 0 {
		t.Errorf("incMonth from December = %d-%d", c.year, c.month+1)
	}
	if !c.incYear() || c.year != 2022 {
		t.Error("incYear must always report roll-over")
	}
}

func TestInstantResetBelow(t *testing.T) {
	c := newInstant(date(2021, 7, 19, 13, 45, 30))

	c.resetBelow(units[Hour].rank)
	if got := c.time(); !got.Equal(date(2021, 7, 19, 13, 0, 0)) {
		t.Errorf("resetBelow(hour) = %v", got)
	}

	c = newInstant(date(2021, 7, 19, 13, 45, 30))
	c.resetBelow(units[Year].rank)
	if got := c.time(); !got.Equal(date(2021, 1, 1, 0, 0, 0)) {
		t.Errorf("resetBelow(year) = %v", got)
	}

	c = newInstant(date(2021, 7, 19, 13, 45, 30))
	c.resetBelow(units[Second].rank)
	if got := c.time(); !got.Equal(date(2021, 7, 19, 13, 45, 30)) {
		t.Errorf("resetBelow(second) changed the instant: %v", got)
	}
}

func TestInstantWeekday(t *testing.T) {
	for _, d := range []time.Time{
		date(2018, 4, 15, 0, 0, 0),
		date(2020, 2, 29, 23, 59, 59),
		date(2024, 6, 17, 12, 0, 0),
	} {
		c := newInstant(d)
		if got := c.weekday(); got != int(d.Weekday()) {
			t.Errorf("weekday(%v) = %d, want %d", d, got, d.Weekday())
		}
	}
}

func TestInstantKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	at := time.Date(2021, 3, 4, 5, 6, 7, 0, loc)
	if got := newInstant(at).time(); !got.Equal(at) || got.Location() != loc {
		t.Errorf("round trip = %v", got)
	}
}

func TestFieldString(t *testing.T) {
	if DayOfMonth.String() != "day_of_month" || Year.String() != "year" {
		t.Error("unexpected field names")
	}
	if got := Field(12).String(); got != "Field(12)" {
		t.Errorf("Field(12).String() = %q", got)
	}
}
