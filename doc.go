/*
Package cronner compiles cron-style recurrence rules and finds the next time
a rule fires.

# Usage

	rule, err := cronner.Compile("0 30 9 * * 1-5 *")
	if err != nil {
		return err
	}
	next, ok := rule.NextDate(time.Now())
	if !ok {
		// The rule can never fire again within the search bound.
	}

A compiled *Rule is immutable and may be shared by any number of goroutines.

# Rule Format

A rule has seven space-separated fields. The first and last may be omitted:
five fields imply a seconds field of "0" and a year of "*", six fields imply
a year of "*".

	Field        | Values | Notes
	----------   | ------ | -----
	Second       | 0-59   |
	Minute       | 0-59   |
	Hour         | 0-23   |
	Day of month | 1-31   | also accepts T/K
	Month        | 1-12   |
	Day of week  | 0-7    | 0 and 7 are Sunday
	Year         | any    |

Values outside these ranges compile but never match. AnalyzeRule reports
them.

Each field is a comma-separated list of tokens; the field matches when any
token does.

	*        any value
	N        exactly N
	N-M      N through M inclusive
	*\/N     every value divisible by N, counted from the field's zero
	         (second 0, hour 0, January, Sunday, day 0)
	N-M/K    values from N through M except every Kth one:
	         1-10/2 = 1,3,5,7,9 and 2-12/3 = 2,3,5,6,8,9,11,12
	T/K      day of month only: every K days from the instant T, given in
	         milliseconds since the Unix epoch

Month values are written 1-12, but step sizes in the month field count
months and are not shifted: *\/3 is January, April, July and October, and
2-12/3 skips April, July and October.

# Day Matching

When both the day-of-month and the day-of-week fields are restricted (each
holds at least one token other than "*"), a day matches when either field
matches, as in traditional cron. Otherwise both must match. For example "* * * 0 * 3 *"
fires every second of every Wednesday, because no month has a day 0.

# Search

NextDate starts one second after the given time and advances the fields of a
candidate, coarsest first, until all of them match. Calendar fields are read
in the location of the given time. A wall time repeated by a backward time
zone transition resolves to its occurrence after the given time; other
transitions are not corrected for. The search gives up after a bounded number of steps (DefaultMaxIterations,
adjustable with Compiler.WithMaxIterations) and reports that no occurrence
was found. That is the expected result for rules that can never fire again,
such as "* * * 30 2 * *" or a year in the past.

# Logging

Rules log exhausted searches at Info level through the Logger set with
Compiler.WithLogger. Adapters exist for the standard log package
(PrintfLogger, VerbosePrintfLogger) and log/slog (NewSlogLogger).
*/
package cronner
