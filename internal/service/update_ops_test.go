package service

import (
	"testing"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUpdateOps_FieldLabels(t *testing.T) {
	cases := []struct {
		op    UpdateOp
		field string
	}{
		{SetName{Name: "x"}, "项目名称"},
		{SetStatus{Status: domain.StatusLaunched}, "状态"},
		{SetPriority{Priority: domain.PriorityTechOpt}, "优先级"},
		{SetWeeklyUpdate{Text: "x"}, "本周进展/问题"},
		{SetLaunchDate{}, "上线时间"},
		{SetRoster{Role: domain.RoleProductManager}, "产品经理"},
		{SetRoster{Role: domain.RoleBackend}, "后端研发"},
		{SetRoster{Role: domain.RoleFrontend}, "前端研发"},
		{SetRoster{Role: domain.RoleQA}, "测试"},
		// silent fields
		{SetBusinessProblem{}, ""},
		{SetProposedDate{}, ""},
		{SetKeyResults{}, ""},
		{SetFollowers{}, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.field, tc.op.Field())
	}
}

func TestSetStatus_ApplyAndRender(t *testing.T) {
	p := testutil.NewTestProject("支付重构", testutil.WithStatus(domain.StatusInProgress))
	op := SetStatus{Status: domain.StatusTesting}

	assert.Equal(t, "开发中", op.Render(p, nil))
	op.Apply(p)
	assert.Equal(t, "测试中", op.Render(p, nil))
	assert.Equal(t, domain.StatusTesting, p.Status)
}

func TestSetLaunchDate_RendersUndecidedWhenNil(t *testing.T) {
	p := testutil.NewTestProject("支付重构")
	op := SetLaunchDate{Date: datePtr(2025, 6, 30)}

	assert.Equal(t, "未定", op.Render(p, nil))
	op.Apply(p)
	assert.Equal(t, "2025-06-30", op.Render(p, nil))
}

func TestSetRoster_RendersMemberSchedules(t *testing.T) {
	p := testutil.NewTestProject("支付重构")
	names := map[string]string{"u1": "张三", "u2": "李四"}

	op := SetRoster{
		Role: domain.RoleBackend,
		Members: []domain.TeamMember{
			{UserID: "u1", TimeSlots: []domain.TimeSlot{
				{StartDate: datePtr(2025, 3, 3), EndDate: datePtr(2025, 3, 14)},
			}},
			{UserID: "u2"}, // booked with no schedule
		},
	}

	assert.Equal(t, "无", op.Render(p, names))
	op.Apply(p)
	assert.Equal(t, "张三(03.03~03.14), 李四(无排期)", op.Render(p, names))
}

func TestSetRoster_LegacyMemberRendersSingleRange(t *testing.T) {
	p := testutil.NewTestProject("风控看板",
		testutil.WithLegacyMember(domain.RoleQA, "u9", testutil.Date(2025, 4, 1), testutil.Date(2025, 4, 18)))
	names := map[string]string{"u9": "王五"}

	op := SetRoster{Role: domain.RoleQA}
	assert.Equal(t, "王五(04.01~04.18)", op.Render(p, names))
}

func TestSetFollowers_UnknownUserFallsBack(t *testing.T) {
	p := testutil.NewTestProject("支付重构")
	op := SetFollowers{UserIDs: []string{"u1", "ghost"}}
	op.Apply(p)

	assert.Equal(t, "张三, 未知用户", op.Render(p, map[string]string{"u1": "张三"}))
}
