package timeline

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEngine_Compute_WorkedExample(t *testing.T) {
	// Window 2024-01-01..01-21 (week mode). Alice has A=[01-01,01-05] and
	// B=[01-03,01-10]: B starts before A ends, so two lanes. C=[01-06,01-08]
	// starts strictly after A's end and reuses lane 0.
	alice := domain.User{ID: "alice", Name: "Alice"}
	projects := []*domain.Project{
		{
			ID: "pa", Name: "A",
			BackendDevelopers: []domain.TeamMember{
				slotMember("alice", domain.TimeSlot{StartDate: datePtr(2024, 1, 1), EndDate: datePtr(2024, 1, 5)}),
			},
		},
		{
			ID: "pb", Name: "B",
			BackendDevelopers: []domain.TeamMember{
				slotMember("alice", domain.TimeSlot{StartDate: datePtr(2024, 1, 3), EndDate: datePtr(2024, 1, 10)}),
			},
		},
		{
			ID: "pc", Name: "C",
			BackendDevelopers: []domain.TeamMember{
				slotMember("alice", domain.TimeSlot{StartDate: datePtr(2024, 1, 6), EndDate: datePtr(2024, 1, 8)}),
			},
		},
	}

	board := quietEngine().Compute(Input{
		Projects:    projects,
		Users:       []domain.User{alice},
		Granularity: GranularityWeek,
		Anchor:      day(2024, 1, 1),
	})

	assert.Equal(t, 21, board.Window.TotalDays)
	require.Len(t, board.Rows, 1)

	row := board.Rows[0]
	assert.Equal(t, "alice", row.User.ID)
	assert.Equal(t, 2, row.MaxLanes)
	require.Len(t, row.Assignments, 3)

	byProject := map[string]int{}
	for _, a := range row.Assignments {
		byProject[a.ProjectID] = a.Lane
	}
	assert.Equal(t, 0, byProject["pa"])
	assert.Equal(t, 1, byProject["pb"])
	assert.Equal(t, 0, byProject["pc"])
}

func TestEngine_Compute_EmptyInputs(t *testing.T) {
	board := quietEngine().Compute(Input{
		Granularity: GranularityMonth,
		Anchor:      day(2024, 5, 20),
	})

	assert.Empty(t, board.Rows)
	assert.Equal(t, day(2024, 5, 1), board.Window.StartDate)
	assert.NotEmpty(t, board.Window.Headers)
}

func TestEngine_Compute_OutOfWindowAssignmentsDropped(t *testing.T) {
	alice := domain.User{ID: "alice", Name: "Alice"}
	projects := []*domain.Project{
		{
			ID: "p1", Name: "过期项目",
			QATesters: []domain.TeamMember{
				slotMember("alice", domain.TimeSlot{StartDate: datePtr(2023, 6, 1), EndDate: datePtr(2023, 6, 10)}),
			},
		},
	}

	board := quietEngine().Compute(Input{
		Projects:    projects,
		Users:       []domain.User{alice},
		Granularity: GranularityWeek,
		Anchor:      day(2024, 1, 1),
	})

	require.Len(t, board.Rows, 1)
	assert.Empty(t, board.Rows[0].Assignments)
	// The lane count still reflects the packing, the render layer sizes
	// rows from it even when all bars fall outside the window.
	assert.Equal(t, 1, board.Rows[0].MaxLanes)
}

func TestEngine_Compute_InvertedSlotDegradesToMinimalBar(t *testing.T) {
	alice := domain.User{ID: "alice", Name: "Alice"}
	projects := []*domain.Project{
		{
			ID: "p1", Name: "错误排期",
			FrontendDevelopers: []domain.TeamMember{
				slotMember("alice", domain.TimeSlot{StartDate: datePtr(2024, 1, 10), EndDate: datePtr(2024, 1, 4)}),
			},
		},
	}

	board := quietEngine().Compute(Input{
		Projects:    projects,
		Users:       []domain.User{alice},
		Granularity: GranularityWeek,
		Anchor:      day(2024, 1, 1),
	})

	require.Len(t, board.Rows, 1)
	require.Len(t, board.Rows[0].Assignments, 1)
	assert.Greater(t, board.Rows[0].Assignments[0].Width, 0.0)
}

func TestEngine_Compute_InvertedSlotStaysQuietAboveDebug(t *testing.T) {
	in := Input{
		Projects: []*domain.Project{
			{
				ID: "p1", Name: "错误排期",
				FrontendDevelopers: []domain.TeamMember{
					slotMember("alice", domain.TimeSlot{StartDate: datePtr(2024, 1, 10), EndDate: datePtr(2024, 1, 4)}),
				},
			},
		},
		Users:       []domain.User{{ID: "alice", Name: "Alice"}},
		Granularity: GranularityWeek,
		Anchor:      day(2024, 1, 1),
	}

	var quiet bytes.Buffer
	NewEngine(slog.New(slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelInfo}))).Compute(in)
	assert.Empty(t, quiet.String(), "a persistent bad slot must not re-warn on every render")

	var verbose bytes.Buffer
	NewEngine(slog.New(slog.NewTextHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}))).Compute(in)
	assert.Contains(t, verbose.String(), "inverted")
}

func TestEngine_Compute_MemoizesIdenticalInput(t *testing.T) {
	e := quietEngine()
	in := Input{
		Projects:    testProjects(),
		Users:       []domain.User{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
		Granularity: GranularityWeek,
		Anchor:      day(2024, 1, 1),
	}

	first := e.Compute(in)
	second := e.Compute(in)
	assert.Same(t, first, second, "identical input should hit the memo")

	in.Anchor = day(2024, 1, 8)
	third := e.Compute(in)
	assert.NotSame(t, first, third, "changed anchor must recompute")
	assert.NotEqual(t, first.Window.StartDate, third.Window.StartDate)
}

func TestEngine_Compute_RowsFollowDeptNameOrder(t *testing.T) {
	users := []domain.User{
		{ID: "u-zhang", Name: "张三", DeptName: "支付部"},
		{ID: "u-li", Name: "李四", DeptName: "支付部"},
		{ID: "u-nodept", Name: "王五"},
	}

	board := quietEngine().Compute(Input{
		Users:       users,
		Granularity: GranularityWeek,
		Anchor:      time.Now(),
	})

	require.Len(t, board.Rows, 3)
	// Same-department rows are adjacent regardless of input order.
	depts := []string{
		board.Rows[0].User.DeptOrUnknown(),
		board.Rows[1].User.DeptOrUnknown(),
		board.Rows[2].User.DeptOrUnknown(),
	}
	assert.ElementsMatch(t, []string{"支付部", "支付部", domain.UnknownDept}, depts)
	if depts[0] == "支付部" {
		assert.Equal(t, "支付部", depts[1])
	}
}
