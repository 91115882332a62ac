package timeline

import (
	"github.com/netbadge-ctrl/okboard/internal/contract"
)

// Position clips the assignment to the window and projects it to horizontal
// percentages. The second return is false when the assignment lies entirely
// outside the window and should be dropped from render output.
//
// An inverted range (end before start) is clamped to a zero-width bar
// rather than rejected; the board degrades instead of failing.
func Position(w contract.Window, a contract.Assignment, lane int) (contract.PositionedAssignment, bool) {
	start, end := a.StartDate, a.EndDate
	if end.Before(start) {
		end = start
	}

	if start.After(w.EndDate) || end.Before(w.StartDate) {
		return contract.PositionedAssignment{}, false
	}

	clippedStart := maxTime(start, w.StartDate)
	clippedEnd := minTime(end, w.EndDate)

	startOffset := DaysBetween(w.StartDate, clippedStart)
	duration := DaysBetween(clippedStart, clippedEnd) + 1
	// Never let a bar run past the window's right edge.
	if max := w.TotalDays - startOffset; duration > max {
		duration = max
	}
	if duration < 0 {
		duration = 0
	}

	return contract.PositionedAssignment{
		Assignment: a,
		Lane:       lane,
		Left:       float64(startOffset) / float64(w.TotalDays) * 100,
		Width:      float64(duration) / float64(w.TotalDays) * 100,
	}, true
}
