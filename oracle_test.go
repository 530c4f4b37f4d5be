package cronner

import (
	"testing"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/robfig/cron/v3"
)

var oracleStarts = []time.Time{
	date(2024, 1, 1, 0, 0, 0),
	date(2024, 2, 28, 23, 59, 59),
	date(2024, 6, 15, 12, 34, 56),
	date(2024, 12, 31, 23, 50, 0),
	date(2025, 3, 9, 1, 59, 59),
}

// Six-field rules mean the same thing to robfig/cron with a seconds field.
func TestNextAgreesWithRobfig(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	for _, spec := range []string{
		"0 30 9 * * *",
		"*/15 * * * * *",
		"0 */5 8-17 * * *",
		"0 0 12 1,15 * 1-5",
		"0 0 0 * 2,6 *",
		"30 15 10 10-20 * *",
		"0 0 0 * * 0",
		"0 45 23 * 12 *",
	} {
		t.Run(spec, func(t *testing.T) {
			oracle, err := parser.Parse(spec)
			if err != nil {
				t.Fatalf("robfig rejected %q: %v", spec, err)
			}
			rule := mustCompile(t, spec)

			for _, from := range oracleStarts {
				want := oracle.Next(from)
				got := rule.Next(from)
				if !got.Equal(want) {
					t.Errorf("Next(%v) = %v, robfig says %v", from, got, want)
				}
			}
		})
	}
}

// gorhill/cronexpr understands a trailing year field.
func TestNextAgreesWithCronexpr(t *testing.T) {
	for _, spec := range []string{
		"0 30 9 * * * 2030",
		"0 0 0 1 1 * 2027-2029",
		"15 45 6 15 3,9 * 2028",
	} {
		t.Run(spec, func(t *testing.T) {
			oracle := cronexpr.MustParse(spec)
			rule := mustCompile(t, spec)

			for _, from := range append(oracleStarts,
				date(2028, 6, 1, 0, 0, 0),
				date(2029, 2, 1, 0, 0, 0),
			) {
				want := oracle.Next(from)
				got := rule.Next(from)
				if !got.Equal(want) {
					t.Errorf("Next(%v) = %v, cronexpr says %v", from, got, want)
				}
			}
		})
	}
}

func TestRuleAsRobfigSchedule(t *testing.T) {
	rule := mustCompile(t, "0 0 * * * * *")

	c := cron.New(cron.WithSeconds())
	id := c.Schedule(rule, cron.FuncJob(func() {}))
	if c.Entry(id).Schedule != cron.Schedule(rule) {
		t.Error("robfig entry does not hold the rule")
	}
}

func TestRobfigScheduleWithNextN(t *testing.T) {
	start := date(2024, 6, 15, 10, 0, 0)
	times := NextN(cron.Every(time.Hour), start, 3)
	if len(times) != 3 || !times[2].Equal(date(2024, 6, 15, 13, 0, 0)) {
		t.Errorf("NextN over cron.Every = %v", times)
	}
}
