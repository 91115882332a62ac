package formatter

import (
	"testing"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestFormatProjectList_TruncatesIDs(t *testing.T) {
	projects := []*domain.Project{
		{
			ID:       "12345678-aaaa-bbbb-cccc-1234567890ab",
			Name:     "支付重构",
			Status:   domain.StatusInProgress,
			Priority: domain.PriorityDeptOKR,
		},
	}

	out := FormatProjectList(projects)

	assert.Contains(t, out, "12345678")
	assert.NotContains(t, out, "1234567890ab")
	assert.Contains(t, out, "支付重构")
	assert.Contains(t, out, "开发中")
	assert.Contains(t, out, "未定")
}

func TestFormatProjectDetail_RostersAndSchedules(t *testing.T) {
	p := &domain.Project{
		Name:     "支付重构",
		Status:   domain.StatusTesting,
		Priority: domain.PriorityCompanyOKR,
		BackendDevelopers: []domain.TeamMember{
			{UserID: "u1", TimeSlots: []domain.TimeSlot{
				{StartDate: datePtr(2025, 3, 3), EndDate: datePtr(2025, 3, 14)},
			}},
		},
		LaunchDate: datePtr(2025, 6, 30),
	}

	out := FormatProjectDetail(p, map[string]string{"u1": "李四"})

	assert.Contains(t, out, "后端研发")
	assert.Contains(t, out, "李四")
	assert.Contains(t, out, "03.03~03.14")
	assert.Contains(t, out, "2025-06-30")
	assert.NotContains(t, out, "产品经理", "empty rosters are omitted")
}

func TestFormatChangeLog_NamesAndArrow(t *testing.T) {
	entries := []domain.ChangeLogEntry{
		{
			UserID:    "u1",
			Field:     "状态",
			OldValue:  "开发中",
			NewValue:  "测试中",
			ChangedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local),
		},
	}

	out := FormatChangeLog(entries, map[string]string{"u1": "张三"})
	assert.Contains(t, out, "张三")
	assert.Contains(t, out, "开发中 → 测试中")

	assert.Contains(t, FormatChangeLog(nil, nil), "暂无变更记录")
}

func TestFormatChangeLog_UnknownUser(t *testing.T) {
	entries := []domain.ChangeLogEntry{{UserID: "ghost", Field: "状态"}}
	assert.Contains(t, FormatChangeLog(entries, nil), "未知用户")
}

func TestFormatOkrSets(t *testing.T) {
	sets := []*domain.OkrSet{
		{
			PeriodID:   "2025-H1",
			PeriodName: "2025上半年",
			OKRs: []domain.OKR{
				{
					Objective: "提升支付成功率",
					KeyResults: []domain.KeyResult{
						{ID: "kr1", Description: "成功率99.9%"},
					},
				},
			},
		},
	}

	out := FormatOkrSets(sets)
	assert.Contains(t, out, "2025上半年")
	assert.Contains(t, out, "提升支付成功率")
	assert.Contains(t, out, "kr1")
}
