package cli

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/config"
	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/service"
	"github.com/netbadge-ctrl/okboard/internal/teatest"
	"github.com/netbadge-ctrl/okboard/internal/testutil"
	"github.com/netbadge-ctrl/okboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires a full App over an in-memory database with a fixed clock.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	okrRepo := repository.NewSQLiteOkrRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	viewRepo := repository.NewSQLiteViewStateRepo(database)

	engine := timeline.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := func() time.Time { return time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local) }

	return &App{
		Projects: service.NewProjectService(projectRepo, userRepo, uow),
		Boards:   service.NewBoardService(projectRepo, userRepo, viewRepo, engine, now),
		Users:    service.NewUserService(userRepo),
		Okrs:     service.NewOkrService(okrRepo),
		Activity: service.NewActivityService(activityRepo, projectRepo),
		Importer: service.NewImportService(uow),
		Config:   config.Config{DefaultView: "main"},
		ActorID:  "test-actor",
	}
}

func seedSchedule(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	alice := domain.User{ID: "u-alice", Name: "张三", DeptName: "支付部"}
	require.NoError(t, app.Users.Upsert(ctx, &alice))

	p := testutil.NewTestProject("支付重构",
		testutil.WithMember(domain.RoleBackend, alice.ID,
			testutil.Date(2025, 3, 4), testutil.Date(2025, 3, 10)))
	require.NoError(t, app.Projects.Create(ctx, p))
}

func TestBoardModel_InitialRender(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "张三")
	assert.Contains(t, view, "支付重构")
	assert.Contains(t, view, "3月3日 - 3月23日")
}

func TestBoardModel_NavigationKeys(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	d.PressKey('l')
	assert.Contains(t, d.View(), "3月10日 - 3月30日")

	d.PressKey('h')
	d.PressKey('h')
	assert.Contains(t, d.View(), "2月24日 - 3月16日")

	d.PressKey('t')
	assert.Contains(t, d.View(), "3月3日 - 3月23日")
}

func TestBoardModel_GranularityToggle(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	d.PressKey('g')
	assert.Contains(t, d.View(), "2025年3月 - 2025年5月")

	d.PressKey('g')
	assert.Contains(t, d.View(), "3月3日 - 3月23日")
}

func TestBoardModel_FilterOverlayOpensAndCloses(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	m := newBoardModel(app)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()

	d.PressKey('f')
	model := d.Model.(boardModel)
	assert.True(t, model.mediator.IsOpen(overlayFilter))
	assert.Contains(t, d.View(), "成员")

	d.PressEsc()
	model = d.Model.(boardModel)
	assert.False(t, model.mediator.IsOpen(overlayFilter))
	assert.Contains(t, d.View(), "张三")
}

func TestBoardModel_QuitKey(t *testing.T) {
	app := newTestApp(t)

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoardModel_FilterOverlayListsProjectsAndKeyResults(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	set := &domain.OkrSet{
		PeriodID:   "2025-H1",
		PeriodName: "2025上半年",
		OKRs: []domain.OKR{
			{ID: "o1", Objective: "提升支付成功率", KeyResults: []domain.KeyResult{
				{ID: "o1-kr1", Description: "支付成功率达到99.9%"},
			}},
		},
	}
	require.NoError(t, app.Okrs.ReplaceSet(context.Background(), set))

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 40))
	d.DrainInit()

	d.PressKey('f')
	view := d.View()
	assert.Contains(t, view, "项目")
	assert.Contains(t, view, "关键结果")
	assert.Contains(t, view, "支付重构")
	assert.Contains(t, view, "o1-kr1")
}

func TestBoardModel_ProjectFilterNarrowsBoard(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)
	ctx := context.Background()

	other := testutil.NewTestProject("结算优化",
		testutil.WithMember(domain.RoleBackend, "u-alice",
			testutil.Date(2025, 3, 4), testutil.Date(2025, 3, 10)))
	require.NoError(t, app.Projects.Create(ctx, other))

	m := newBoardModel(app)
	require.NoError(t, m.store.Refresh(ctx))
	require.Len(t, flattenAssignments(m.store.Board()), 2)

	m.formProjectIDs = []string{other.ID}
	msg := m.applyFilter()()
	loaded, ok := msg.(boardLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)

	assignments := flattenAssignments(m.store.Board())
	require.Len(t, assignments, 1)
	assert.Equal(t, "结算优化", assignments[0].ProjectName)
}

func TestBoardModel_SelectionKeysMoveFooter(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)
	ctx := context.Background()

	other := testutil.NewTestProject("结算优化",
		testutil.WithMember(domain.RoleBackend, "u-alice",
			testutil.Date(2025, 3, 11), testutil.Date(2025, 3, 14)))
	require.NoError(t, app.Projects.Create(ctx, other))

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	assert.Contains(t, d.View(), "▸ ")
	assert.Equal(t, 0, d.Model.(boardModel).selected)

	d.PressKey('j')
	assert.Equal(t, 1, d.Model.(boardModel).selected)

	d.PressKey('j')
	assert.Equal(t, 1, d.Model.(boardModel).selected, "selection stops at the last bar")

	d.PressKey('k')
	assert.Equal(t, 0, d.Model.(boardModel).selected)
}

func TestBoardModel_CycleStatusKeyAdvancesProject(t *testing.T) {
	app := newTestApp(t)
	seedSchedule(t, app)

	d := teatest.New(t, newBoardModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	assert.Contains(t, d.View(), "▸ 支付重构")

	d.PressKey('s')

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.StatusDevDone, projects[0].Status)
	assert.Contains(t, d.View(), "支付重构")
}

func TestDropProjectOutsideStatusFilter(t *testing.T) {
	filter := timeline.Filter{Statuses: []domain.ProjectStatus{domain.StatusInProgress}}

	kept := stubBoard("支付重构")
	dropProjectOutsideStatusFilter(kept, "p1", domain.StatusInProgress, filter)
	assert.Len(t, kept.Rows[0].Assignments, 1, "a status still inside the filter keeps its bars")

	dropped := stubBoard("支付重构")
	dropProjectOutsideStatusFilter(dropped, "p1", domain.StatusPaused, filter)
	assert.Empty(t, dropped.Rows[0].Assignments)
	assert.Equal(t, 1, dropped.Rows[0].MaxLanes)

	unfiltered := stubBoard("支付重构")
	dropProjectOutsideStatusFilter(unfiltered, "p1", domain.StatusPaused, timeline.Filter{})
	assert.Len(t, unfiltered.Rows[0].Assignments, 1, "no status filter means nothing to hide")
}
