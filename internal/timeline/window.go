package timeline

import (
	"fmt"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/contract"
)

// Granularity selects the board's time scale.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// The window always spans three sub-periods of the active granularity.
const (
	windowWeeks  = 3
	windowMonths = 3
)

var weekdayLabels = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// ResolveWindow computes the visible window for the given granularity and
// anchor date: its bounds, sub-period headers, and background divider lines.
//
// Week mode spans three ISO weeks from the Monday on or before the anchor
// and emits a divider per calendar day. Month mode spans three calendar
// months from the first of the anchor's month and emits a divider per
// interior Monday, skipping Mondays that are also the 1st of a month so the
// week mark never doubles a month boundary.
func ResolveWindow(g Granularity, anchor time.Time) contract.Window {
	if g == GranularityMonth {
		return resolveMonthWindow(anchor)
	}
	return resolveWeekWindow(anchor)
}

func resolveWeekWindow(anchor time.Time) contract.Window {
	start := StartOfWeek(anchor)
	end := start.AddDate(0, 0, windowWeeks*7-1)
	totalDays := DaysBetween(start, end) + 1

	headers := make([]contract.Header, 0, windowWeeks)
	for i := 0; i < windowWeeks; i++ {
		weekStart := start.AddDate(0, 0, i*7)
		headers = append(headers, contract.Header{
			Label: fmt.Sprintf("W%d (%s)", ISOWeekNumber(weekStart), monthDayLabel(weekStart)),
			Days:  7,
		})
	}

	dividers := make([]contract.Divider, 0, totalDays)
	for day := 0; day < totalDays; day++ {
		d := start.AddDate(0, 0, day)
		dayIndex := (int(d.Weekday()) + 6) % 7
		dividers = append(dividers, contract.Divider{
			Position: float64(day) / float64(totalDays) * 100,
			Type:     contract.DividerDay,
			Label:    weekdayLabels[dayIndex],
		})
	}

	return contract.Window{
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Headers:    headers,
		Dividers:   dividers,
		RangeLabel: fmt.Sprintf("%s - %s", monthDayLabel(start), monthDayLabel(end)),
	}
}

func resolveMonthWindow(anchor time.Time) contract.Window {
	start := StartOfMonth(anchor)
	end := start.AddDate(0, windowMonths, 0).AddDate(0, 0, -1)
	totalDays := DaysBetween(start, end) + 1

	headers := make([]contract.Header, 0, windowMonths)
	for i := 0; i < windowMonths; i++ {
		monthStart := start.AddDate(0, i, 0)
		headers = append(headers, contract.Header{
			Label: yearMonthLabel(monthStart),
			Days:  DaysBetween(monthStart, monthStart.AddDate(0, 1, 0)),
		})
	}

	var dividers []contract.Divider
	for monday := firstMondayOnOrAfter(start); !monday.After(end); monday = monday.AddDate(0, 0, 7) {
		if monday.Day() == 1 {
			continue
		}
		dividers = append(dividers, contract.Divider{
			Position: float64(DaysBetween(start, monday)) / float64(totalDays) * 100,
			Type:     contract.DividerWeek,
			Label:    fmt.Sprintf("W%d", ISOWeekNumber(monday)),
		})
	}

	return contract.Window{
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Headers:    headers,
		Dividers:   dividers,
		RangeLabel: fmt.Sprintf("%s - %s", yearMonthLabel(start), yearMonthLabel(end)),
	}
}

func firstMondayOnOrAfter(t time.Time) time.Time {
	monday := StartOfWeek(t)
	if monday.Before(Normalize(t)) {
		monday = monday.AddDate(0, 0, 7)
	}
	return monday
}

func monthDayLabel(t time.Time) string {
	return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
}

func yearMonthLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
}

// ShiftAnchor moves the anchor by delta units of the active granularity:
// weeks in week mode, calendar months in month mode.
func ShiftAnchor(g Granularity, anchor time.Time, delta int) time.Time {
	if g == GranularityMonth {
		return Normalize(anchor).AddDate(0, delta, 0)
	}
	return Normalize(anchor).AddDate(0, 0, delta*7)
}

// ResetAnchor returns the anchor used after a granularity switch: today.
func ResetAnchor(now time.Time) time.Time {
	return Normalize(now)
}
