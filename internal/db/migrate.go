package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated because the set is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		dept_name  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS okr_sets (
		period_id   TEXT PRIMARY KEY,
		period_name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS okrs (
		id          TEXT PRIMARY KEY,
		period_id   TEXT NOT NULL REFERENCES okr_sets(period_id) ON DELETE CASCADE,
		objective   TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS key_results (
		id          TEXT PRIMARY KEY,
		okr_id      TEXT NOT NULL REFERENCES okrs(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		priority         TEXT NOT NULL,
		status           TEXT NOT NULL,
		business_problem TEXT NOT NULL DEFAULT '',
		key_result_ids   TEXT NOT NULL DEFAULT '',
		weekly_update    TEXT NOT NULL DEFAULT '',
		last_week_update TEXT NOT NULL DEFAULT '',
		proposed_date    TEXT,
		launch_date      TEXT,
		followers        TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	// Role rosters. order_index preserves roster order, which the board
	// relies on for its deterministic lane tie-break.
	`CREATE TABLE IF NOT EXISTS project_members (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		role        TEXT NOT NULL
		            CHECK(role IN ('product_manager','backend','frontend','qa')),
		user_id     TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_members_project ON project_members(project_id)`,

	`CREATE TABLE IF NOT EXISTS member_slots (
		id          TEXT PRIMARY KEY,
		member_id   TEXT NOT NULL REFERENCES project_members(id) ON DELETE CASCADE,
		start_date  TEXT,
		end_date    TEXT,
		description TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_member_slots_member ON member_slots(member_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		text       TEXT NOT NULL,
		mentions   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id)`,

	`CREATE TABLE IF NOT EXISTS change_log (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		field      TEXT NOT NULL,
		old_value  TEXT NOT NULL DEFAULT '',
		new_value  TEXT NOT NULL DEFAULT '',
		changed_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_change_log_project ON change_log(project_id)`,

	// Per-view UI state: filters, granularity and anchor, stored as JSON.
	`CREATE TABLE IF NOT EXISTS view_states (
		view_name  TEXT PRIMARY KEY,
		state      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
