package domain

import "time"

const (
	// UndecidedDate stands in for launch or proposed dates not yet set.
	UndecidedDate = "未定"
	// UnknownUser stands in for user IDs that no longer resolve, e.g. a
	// follower or change author deleted from the directory.
	UnknownUser = "未知用户"
)

// DateOrUndecided formats an optional date as YYYY-MM-DD, falling back to
// the UndecidedDate sentinel when unset.
func DateOrUndecided(t *time.Time) string {
	if t == nil {
		return UndecidedDate
	}
	return t.Format("2006-01-02")
}

// UserNameOr resolves a user ID against a name map, falling back to the
// UnknownUser sentinel.
func UserNameOr(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return UnknownUser
}
