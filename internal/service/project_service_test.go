package service

import (
	"context"
	"testing"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateFillsDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)
	ctx := context.Background()

	p := &domain.Project{Name: "支付重构"}
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.StatusNotStarted, p.Status)
	assert.Equal(t, domain.PriorityBusiness, p.Priority)

	loaded, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "支付重构", loaded.Name)
}

func TestApplyUpdate_RecordsChangeLogEntry(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)
	ctx := context.Background()

	actor := testutil.NewTestUser("张三", "支付部")
	require.NoError(t, env.users.Upsert(ctx, &actor))

	p := testutil.NewTestProject("支付重构", testutil.WithStatus(domain.StatusInProgress))
	require.NoError(t, env.projects.Create(ctx, p))

	updated, err := svc.ApplyUpdate(ctx, p.ID, actor.ID, SetStatus{Status: domain.StatusTesting})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTesting, updated.Status)

	changes, err := env.activity.ListChanges(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "状态", changes[0].Field)
	assert.Equal(t, "开发中", changes[0].OldValue)
	assert.Equal(t, "测试中", changes[0].NewValue)
	assert.Equal(t, actor.ID, changes[0].UserID)
}

func TestApplyUpdate_NoEntryWhenValueUnchanged(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)
	ctx := context.Background()

	p := testutil.NewTestProject("支付重构", testutil.WithStatus(domain.StatusTesting))
	require.NoError(t, env.projects.Create(ctx, p))

	_, err := svc.ApplyUpdate(ctx, p.ID, "u1", SetStatus{Status: domain.StatusTesting})
	require.NoError(t, err)

	changes, err := env.activity.ListChanges(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestApplyUpdate_SilentFieldPersistsWithoutEntry(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)
	ctx := context.Background()

	p := testutil.NewTestProject("支付重构")
	require.NoError(t, env.projects.Create(ctx, p))

	updated, err := svc.ApplyUpdate(ctx, p.ID, "u1", SetBusinessProblem{Text: "对账延迟超过一天"})
	require.NoError(t, err)
	assert.Equal(t, "对账延迟超过一天", updated.BusinessProblem)

	changes, err := env.activity.ListChanges(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestApplyUpdate_RosterChangeRendersSchedules(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)
	ctx := context.Background()

	dev := domain.User{ID: "u-dev", Name: "李四", DeptName: "支付部"}
	require.NoError(t, env.users.Upsert(ctx, &dev))

	p := testutil.NewTestProject("支付重构")
	require.NoError(t, env.projects.Create(ctx, p))

	op := SetRoster{
		Role: domain.RoleBackend,
		Members: []domain.TeamMember{
			{UserID: dev.ID, TimeSlots: []domain.TimeSlot{
				{StartDate: datePtr(2025, 3, 3), EndDate: datePtr(2025, 3, 14)},
			}},
		},
	}
	updated, err := svc.ApplyUpdate(ctx, p.ID, dev.ID, op)
	require.NoError(t, err)
	require.Len(t, updated.BackendDevelopers, 1)

	changes, err := env.activity.ListChanges(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "后端研发", changes[0].Field)
	assert.Equal(t, "无", changes[0].OldValue)
	assert.Equal(t, "李四(03.03~03.14)", changes[0].NewValue)
}

func TestApplyUpdate_UnknownProjectFails(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects, env.users, env.uow)

	_, err := svc.ApplyUpdate(context.Background(), "missing", "u1", SetName{Name: "x"})
	assert.Error(t, err)
}
