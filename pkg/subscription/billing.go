package subscription

import (
	"fmt"
	"time"
)

// TrialPeriod is the fixed length of a trial activation.
const TrialPeriod = 7 * 24 * time.Hour

// NextBillingDate returns the date one billing interval after from.
//
// Calendar overflow is clamped to the last day of the target month:
// Jan 31 + 1 month is Feb 28 (Feb 29 in leap years), and Feb 29 + 1 year is Feb 28.
// Time of day and location are preserved.
func NextBillingDate(d Duration, from time.Time) (time.Time, error) {
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDuration, d)
	}
	if d == DurationYearly {
		return addMonthsClamped(from, 12), nil
	}
	return addMonthsClamped(from, 1), nil
}

// TrialEndsAt returns the billing date of a trial started at from.
func TrialEndsAt(from time.Time) time.Time {
	return from.Add(TrialPeriod)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	// Day 1 never overflows, so this normalizes year/month only.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day = min(day, daysIn(first.Year(), first.Month(), t.Location()))

	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
