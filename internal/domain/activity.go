package domain

import "time"

// Comment is a discussion entry on a project. Mentions hold user IDs
// referenced with @ in the text.
type Comment struct {
	ID        string
	ProjectID string
	UserID    string
	Text      string
	Mentions  []string
	CreatedAt time.Time
}

// ChangeLogEntry records one field change on a project, with the old and new
// values already formatted for display.
type ChangeLogEntry struct {
	ID        string
	ProjectID string
	UserID    string
	Field     string
	OldValue  string
	NewValue  string
	ChangedAt time.Time
}
