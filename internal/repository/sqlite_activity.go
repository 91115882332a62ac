package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo: project comments and the
// change log.
type SQLiteActivityRepo struct {
	conn db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{conn: conn}
}

func (r *SQLiteActivityRepo) AddComment(ctx context.Context, c *domain.Comment) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO comments (id, project_id, user_id, text, mentions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.UserID, c.Text, encodeStrings(c.Mentions),
		c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListComments(ctx context.Context, projectID string) ([]domain.Comment, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, project_id, user_id, text, mentions, created_at
		FROM comments WHERE project_id = ? ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var mentionsStr, createdStr string
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Text, &mentionsStr, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.Mentions = decodeStrings(mentionsStr)
		c.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing comment created_at: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *SQLiteActivityRepo) AddChange(ctx context.Context, e *domain.ChangeLogEntry) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO change_log (id, project_id, user_id, field, old_value, new_value, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.UserID, e.Field, e.OldValue, e.NewValue,
		e.ChangedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting change log entry: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListChanges(ctx context.Context, projectID string) ([]domain.ChangeLogEntry, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, project_id, user_id, field, old_value, new_value, changed_at
		FROM change_log WHERE project_id = ? ORDER BY changed_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing change log: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChangeLogEntry
	for rows.Next() {
		var e domain.ChangeLogEntry
		var changedStr string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.UserID, &e.Field, &e.OldValue, &e.NewValue, &changedStr); err != nil {
			return nil, fmt.Errorf("scanning change log entry: %w", err)
		}
		e.ChangedAt, err = time.Parse(time.RFC3339, changedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing changed_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change log: %w", err)
	}
	return entries, nil
}
