package db

import (
	"context"
	"database/sql"
)

// DBTX is what the board's repositories run their queries against. Both
// *sql.DB and *sql.Tx satisfy it, so a repository can be constructed over
// the shared handle for reads or over a transaction when a project update
// and its change-log entry must land together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
