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

func TestProjectRepo_CreateAndGet_RoundTripsRosters(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("支付网关重构",
		testutil.WithPriority(domain.PriorityDeptOKR),
		testutil.WithKeyResults("kr1", "kr2"),
		testutil.WithMember(domain.RoleBackend, "alice", testutil.Date(2024, 1, 1), testutil.Date(2024, 1, 5)),
		testutil.WithMember(domain.RoleBackend, "bob", testutil.Date(2024, 1, 3), testutil.Date(2024, 1, 10)),
		testutil.WithLegacyMember(domain.RoleQA, "carol", testutil.Date(2024, 1, 8), testutil.Date(2024, 1, 12)),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, "支付网关重构", got.Name)
	assert.Equal(t, domain.PriorityDeptOKR, got.Priority)
	assert.Equal(t, []string{"kr1", "kr2"}, got.KeyResultIDs)

	require.Len(t, got.BackendDevelopers, 2)
	// Roster order is preserved; it is the lane tie-break.
	assert.Equal(t, "alice", got.BackendDevelopers[0].UserID)
	assert.Equal(t, "bob", got.BackendDevelopers[1].UserID)
	require.Len(t, got.BackendDevelopers[0].TimeSlots, 1)
	require.NotNil(t, got.BackendDevelopers[0].TimeSlots[0].StartDate)
	assert.Equal(t, "2024-01-01", got.BackendDevelopers[0].TimeSlots[0].StartDate.Format("2006-01-02"))

	// Legacy member round-trips via the single-range columns.
	require.Len(t, got.QATesters, 1)
	assert.Empty(t, got.QATesters[0].TimeSlots)
	require.NotNil(t, got.QATesters[0].StartDate)
	assert.Equal(t, "2024-01-08", got.QATesters[0].StartDate.Format("2006-01-02"))
	require.Len(t, got.QATesters[0].EffectiveSlots(), 1)
}

func TestProjectRepo_Update_ReplacesRosters(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("风控看板",
		testutil.WithMember(domain.RoleFrontend, "alice", testutil.Date(2024, 2, 1), testutil.Date(2024, 2, 10)),
	)
	require.NoError(t, repo.Create(ctx, p))

	p.Status = domain.StatusTesting
	p.WeeklyUpdate = "联调完成，进入测试"
	p.FrontendDevelopers = nil
	p.QATesters = []domain.TeamMember{
		{UserID: "dave", TimeSlots: []domain.TimeSlot{
			{StartDate: timePtr(testutil.Date(2024, 2, 12)), EndDate: timePtr(testutil.Date(2024, 2, 16)), Description: "回归"},
		}},
	}
	p.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTesting, got.Status)
	assert.Equal(t, "联调完成，进入测试", got.WeeklyUpdate)
	assert.Empty(t, got.FrontendDevelopers)
	require.Len(t, got.QATesters, 1)
	assert.Equal(t, "回归", got.QATesters[0].TimeSlots[0].Description)

	// No orphaned member or slot rows survive the replacement.
	var members, slots int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM project_members`).Scan(&members))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM member_slots`).Scan(&slots))
	assert.Equal(t, 1, members)
	assert.Equal(t, 1, slots)
}

func TestProjectRepo_List_OrdersByCreation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	first := testutil.NewTestProject("先创建")
	first.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := testutil.NewTestProject("后创建")
	second.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "先创建", projects[0].Name)
}

func TestProjectRepo_Delete_CascadesRosterRows(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("临时项目",
		testutil.WithMember(domain.RoleProductManager, "erin", testutil.Date(2024, 3, 1), testutil.Date(2024, 3, 5)),
	)
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.Error(t, err)

	var members int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM project_members`).Scan(&members))
	assert.Zero(t, members)
}

func timePtr(t time.Time) *time.Time { return &t }
