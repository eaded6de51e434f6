// Package period computes inclusive calendar window boundaries.
//
// All boundary arithmetic happens in the reference time's location, so
// callers pass times already shifted to the user's configured zone.
// End bounds are inclusive of the final instant of the final day
// (last nanosecond), so a transaction stamped exactly at a boundary is
// never double-counted by adjacent windows.
package period

import (
	"fmt"
	"time"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// WeekStart anchors weekly windows. Monday is the fixed convention;
// changing it would invalidate stored weekly bucket keys.
const WeekStart = time.Monday

// Bounds returns the inclusive [start, end] window of the given kind
// containing ref.
func Bounds(ref time.Time, kind model.PeriodKind) (time.Time, time.Time, error) {
	switch kind {
	case model.PeriodDaily:
		s, e := DayBounds(ref)
		return s, e, nil
	case model.PeriodWeekly:
		s, e := WeekBounds(ref)
		return s, e, nil
	case model.PeriodMonthly:
		s, e := MonthBounds(ref)
		return s, e, nil
	case model.PeriodYearly:
		s, e := YearBounds(ref)
		return s, e, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period kind %q", kind)
	}
}

// DayBounds returns the bounds of ref's calendar day.
func DayBounds(ref time.Time) (time.Time, time.Time) {
	start := startOfDay(ref)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekBounds returns the 7-day window containing ref, starting on WeekStart.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	// Days since the most recent Monday (Sunday counts as 6 back).
	offset := (int(ref.Weekday()) - int(WeekStart) + 7) % 7
	start := startOfDay(ref).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// MonthBounds returns the bounds of ref's calendar month. The end is
// derived from the first day of the next month, which handles
// 28/29/30/31-day months and the December rollover uniformly.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// YearBounds returns Jan 1 through Dec 31 of ref's year.
func YearBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
}

// Custom normalizes a caller-supplied range to whole-day bounds:
// start at 00:00:00 and end at the last instant of its day.
func Custom(start, end time.Time) (time.Time, time.Time, error) {
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	s := startOfDay(start)
	_, e := DayBounds(end)
	return s, e, nil
}

// Next advances a window start to the start of the following window.
func Next(start time.Time, kind model.PeriodKind) (time.Time, error) {
	switch kind {
	case model.PeriodDaily:
		return startOfDay(start).AddDate(0, 0, 1), nil
	case model.PeriodWeekly:
		return startOfDay(start).AddDate(0, 0, 7), nil
	case model.PeriodMonthly:
		s, _ := MonthBounds(start)
		return s.AddDate(0, 1, 0), nil
	case model.PeriodYearly:
		s, _ := YearBounds(start)
		return s.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period kind %q", kind)
	}
}

// BucketKey returns a stable label for the window of the given kind
// containing t, e.g. "2024-03" for monthly. Used as the duplicate
// guard key when materializing recurring transactions.
func BucketKey(t time.Time, kind model.PeriodKind) string {
	switch kind {
	case model.PeriodDaily:
		return t.Format("2006-01-02")
	case model.PeriodWeekly:
		start, _ := WeekBounds(t)
		return "W" + start.Format("2006-01-02")
	case model.PeriodMonthly:
		return t.Format("2006-01")
	case model.PeriodYearly:
		return t.Format("2006")
	default:
		return ""
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
