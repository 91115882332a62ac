package testutil

import (
	"database/sql"
	"testing"

	"github.com/netbadge-ctrl/okboard/internal/db"
)

// NewTestDB opens a migrated in-memory board database and closes it when
// the test finishes. Every repository and service test runs against real
// SQLite rather than mocks.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps the test database in a UnitOfWork for tests that
// exercise transactional paths like ApplyUpdate and seed imports.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
