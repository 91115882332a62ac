package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_Comments(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	repo := repository.NewSQLiteActivityRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("支付网关重构")
	require.NoError(t, projects.Create(ctx, p))

	older := &domain.Comment{
		ID: "c1", ProjectID: p.ID, UserID: "alice",
		Text:      "进度如何？@bob",
		Mentions:  []string{"bob"},
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := &domain.Comment{
		ID: "c2", ProjectID: p.ID, UserID: "bob",
		Text:      "本周联调",
		CreatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.AddComment(ctx, older))
	require.NoError(t, repo.AddComment(ctx, newer))

	comments, err := repo.ListComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Newest first.
	assert.Equal(t, "c2", comments[0].ID)
	assert.Equal(t, []string{"bob"}, comments[1].Mentions)
}

func TestActivityRepo_ChangeLog(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	repo := repository.NewSQLiteActivityRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("风控看板")
	require.NoError(t, projects.Create(ctx, p))

	entry := &domain.ChangeLogEntry{
		ID: "cl1", ProjectID: p.ID, UserID: "alice",
		Field: "状态", OldValue: "开发中", NewValue: "测试中",
		ChangedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.AddChange(ctx, entry))

	entries, err := repo.ListChanges(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "状态", entries[0].Field)
	assert.Equal(t, "测试中", entries[0].NewValue)
}

func TestActivityRepo_CascadeOnProjectDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	repo := repository.NewSQLiteActivityRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("临时项目")
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, repo.AddComment(ctx, &domain.Comment{
		ID: "c1", ProjectID: p.ID, UserID: "alice", Text: "x", CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, projects.Delete(ctx, p.ID))

	comments, err := repo.ListComments(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
