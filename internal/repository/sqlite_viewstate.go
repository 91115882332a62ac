package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/db"
)

// SQLiteViewStateRepo implements ViewStateRepo, the key-value store for
// per-view filter and navigation state.
type SQLiteViewStateRepo struct {
	conn db.DBTX
}

func NewSQLiteViewStateRepo(conn db.DBTX) *SQLiteViewStateRepo {
	return &SQLiteViewStateRepo{conn: conn}
}

func (r *SQLiteViewStateRepo) Get(ctx context.Context, viewName string) (*ViewState, error) {
	var s ViewState
	var updatedStr string
	err := r.conn.QueryRowContext(ctx,
		`SELECT view_name, state, updated_at FROM view_states WHERE view_name = ?`, viewName).
		Scan(&s.ViewName, &s.State, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // a view with no saved state is not an error
		}
		return nil, fmt.Errorf("scanning view state: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing view state updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteViewStateRepo) Put(ctx context.Context, s *ViewState) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO view_states (view_name, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(view_name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		s.ViewName, s.State, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting view state: %w", err)
	}
	return nil
}
