package timeline

import (
	"math"
	"time"
)

// Normalize truncates t to midnight in its own location. All board math
// runs on normalized dates so partial-day timestamps and DST shifts cannot
// skew day differences.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before t (ISO week start), at midnight.
func StartOfWeek(t time.Time) time.Time {
	d := Normalize(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole calendar days from a to b. Both are
// normalized to midnight first; the rounding absorbs the 23h/25h days a DST
// transition produces.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Normalize(b).Sub(Normalize(a)).Hours() / 24))
}

// ISOWeekNumber returns the ISO-8601 week number of t's calendar date,
// evaluated in UTC so the Thursday anchor cannot drift across a DST edge.
func ISOWeekNumber(t time.Time) int {
	_, week := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
