// Package contract defines the data shapes exchanged between the timeline
// engine, the services, and the rendering surfaces (TUI, plain text, SVG).
package contract

import (
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// DividerType marks what a background divider line separates.
type DividerType string

const (
	DividerDay  DividerType = "day"
	DividerWeek DividerType = "week"
)

// Header is one sub-period column of the visible window: a week in week
// mode, a calendar month in month mode.
type Header struct {
	Label string
	Days  int
}

// Divider is a background grid line at a horizontal position expressed as a
// percentage of the window width.
type Divider struct {
	Position float64
	Type     DividerType
	Label    string
}

// Window is the resolved visible date range of the board. It is recomputed
// whole on every granularity or anchor change and never mutated in place.
type Window struct {
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Headers    []Header
	Dividers   []Divider
	RangeLabel string
}

// Contains reports whether the day d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}

// Assignment is one date-ranged booking of a user on a project role,
// flattened out of the project rosters for layout. It lives only for the
// duration of one board computation.
type Assignment struct {
	ProjectID   string
	ProjectName string
	Role        domain.Role
	StartDate   time.Time
	EndDate     time.Time
	Description string
}

// PositionedAssignment is an assignment with its packed lane and projected
// horizontal geometry. Left and Width are percentages of the window width.
type PositionedAssignment struct {
	Assignment
	Lane  int
	Left  float64
	Width float64
}

// BoardRow is one user's row: their positioned assignments and the lane
// count that sizes the row.
type BoardRow struct {
	User        domain.User
	Assignments []PositionedAssignment
	MaxLanes    int
}

// Board is the full result handed to a rendering surface.
type Board struct {
	Window Window
	Rows   []BoardRow
}
