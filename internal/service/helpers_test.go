package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	projects *repository.SQLiteProjectRepo
	users    *repository.SQLiteUserRepo
	okrs     *repository.SQLiteOkrRepo
	activity *repository.SQLiteActivityRepo
	views    *repository.SQLiteViewStateRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		projects: repository.NewSQLiteProjectRepo(database),
		users:    repository.NewSQLiteUserRepo(database),
		okrs:     repository.NewSQLiteOkrRepo(database),
		activity: repository.NewSQLiteActivityRepo(database),
		views:    repository.NewSQLiteViewStateRepo(database),
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := testutil.Date(y, m, d)
	return &t
}
