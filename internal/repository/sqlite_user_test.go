package repository_test

import (
	"context"
	"testing"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_UpsertAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()

	u := &domain.User{ID: "u1", Name: "张三", Email: "zhangsan@example.com", DeptName: "支付部"}
	require.NoError(t, repo.Upsert(ctx, u))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "张三", got.Name)
	assert.Equal(t, "支付部", got.DeptName)

	// Upsert with the same ID updates in place.
	u.DeptName = "平台部"
	require.NoError(t, repo.Upsert(ctx, u))
	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "平台部", got.DeptName)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteUserRepo(database)

	_, err := repo.GetByID(context.Background(), "nobody")
	assert.Error(t, err)
}

func TestUserRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "u1", Name: "李四"}))
	require.NoError(t, repo.Delete(ctx, "u1"))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
