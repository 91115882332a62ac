package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/netbadge-ctrl/okboard/internal/cli/formatter"
	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/service"
	"github.com/netbadge-ctrl/okboard/internal/timeline"
)

const overlayFilter = "filter"

type boardKeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	SelectNext  key.Binding
	SelectPrev  key.Binding
	CycleStatus key.Binding
	Today       key.Binding
	Granularity key.Binding
	Filter      key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Prev:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "上一页")),
		Next:        key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "下一页")),
		SelectNext:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "选择下一条")),
		SelectPrev:  key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "选择上一条")),
		CycleStatus: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "推进状态")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "回到今天")),
		Granularity: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "切换周/月")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "筛选")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "刷新")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
	}
}

func (k boardKeyMap) helpLine() string {
	bindings := []key.Binding{k.Prev, k.Next, k.SelectNext, k.SelectPrev, k.CycleStatus, k.Today, k.Granularity, k.Filter, k.Refresh, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, "  ")
}

type boardLoadedMsg struct{ err error }

type filterOptionsMsg struct {
	users    []domain.User
	projects []*domain.Project
	okrSets  []*domain.OkrSet
	err      error
}

// boardModel is the root bubbletea Model of the interactive board.
type boardModel struct {
	app   *App
	store *boardStore

	mediator *OverlayMediator
	keys     boardKeyMap

	// selected indexes the flattened assignment list; j/k move it and s
	// advances the selected project's status.
	selected int

	filterForm     *huh.Form
	formUserIDs    []string
	formProjectIDs []string
	formKrIDs      []string
	formStatus     []string
	formPrio       []string

	width    int
	height   int
	status   string
	quitting bool
}

func newBoardModel(app *App) boardModel {
	return boardModel{
		app:      app,
		store:    newBoardStore(app.Boards, app.Projects, app.Config.DefaultView, app.ActorID),
		mediator: NewOverlayMediator(),
		keys:     defaultBoardKeyMap(),
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadBoard()
}

func (m boardModel) loadBoard() tea.Cmd {
	return func() tea.Msg {
		return boardLoadedMsg{err: m.store.Refresh(context.Background())}
	}
}

func (m boardModel) navigate(delta int) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Boards.Navigate(context.Background(), m.app.Config.DefaultView, delta); err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{err: m.store.Refresh(context.Background())}
	}
}

func (m boardModel) toggleGranularity() tea.Cmd {
	next := timeline.GranularityMonth
	if m.store.View().Granularity == timeline.GranularityMonth {
		next = timeline.GranularityWeek
	}
	return func() tea.Msg {
		if err := m.app.Boards.SetGranularity(context.Background(), m.app.Config.DefaultView, next); err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{err: m.store.Refresh(context.Background())}
	}
}

func (m boardModel) loadFilterOptions() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		users, err := m.app.Users.List(ctx)
		if err != nil {
			return filterOptionsMsg{err: err}
		}
		projects, err := m.app.Projects.List(ctx)
		if err != nil {
			return filterOptionsMsg{err: err}
		}
		okrSets, err := m.app.Okrs.ListSets(ctx)
		if err != nil {
			return filterOptionsMsg{err: err}
		}
		return filterOptionsMsg{users: users, projects: projects, okrSets: okrSets}
	}
}

func (m boardModel) applyFilter() tea.Cmd {
	f := timeline.Filter{
		UserIDs:    m.formUserIDs,
		ProjectIDs: m.formProjectIDs,
		KrIDs:      m.formKrIDs,
		Statuses:   toStatusFilter(m.formStatus),
		Priorities: toPriorityFilter(m.formPrio),
	}
	return func() tea.Msg {
		if err := m.app.Boards.SetFilter(context.Background(), m.app.Config.DefaultView, f); err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{err: m.store.Refresh(context.Background())}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		if n := len(flattenAssignments(m.store.Board())); m.selected >= n {
			m.selected = 0
		}
		return m, nil

	case filterOptionsMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.filterForm = m.buildFilterForm(msg)
		m.mediator.Open(overlayFilter)
		return m, m.filterForm.Init()
	}

	if m.mediator.IsOpen(overlayFilter) && m.filterForm != nil {
		return m.updateFilterForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleBoardKey(key)
	}
	return m, nil
}

func (m boardModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m, m.navigate(-1)
	case key.Matches(msg, m.keys.Next):
		return m, m.navigate(1)
	case key.Matches(msg, m.keys.Today):
		// resetting the granularity to its current value re-anchors on today
		return m, func() tea.Msg {
			g := m.store.View().Granularity
			if err := m.app.Boards.SetGranularity(context.Background(), m.app.Config.DefaultView, g); err != nil {
				return boardLoadedMsg{err: err}
			}
			return boardLoadedMsg{err: m.store.Refresh(context.Background())}
		}
	case key.Matches(msg, m.keys.Granularity):
		return m, m.toggleGranularity()
	case key.Matches(msg, m.keys.SelectNext):
		if n := len(flattenAssignments(m.store.Board())); m.selected < n-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.SelectPrev):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.CycleStatus):
		return m, m.cycleStatus()
	case key.Matches(msg, m.keys.Filter):
		return m, m.loadFilterOptions()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard()
	}
	return m, nil
}

func flattenAssignments(b *contract.Board) []contract.PositionedAssignment {
	if b == nil {
		return nil
	}
	var out []contract.PositionedAssignment
	for _, row := range b.Rows {
		out = append(out, row.Assignments...)
	}
	return out
}

func (m boardModel) selectedAssignment() (contract.PositionedAssignment, bool) {
	assignments := flattenAssignments(m.store.Board())
	if m.selected < 0 || m.selected >= len(assignments) {
		return contract.PositionedAssignment{}, false
	}
	return assignments[m.selected], true
}

// cycleStatus advances the selected project to the next status. The board
// copy is staged first so a project leaving the active status filter
// disappears immediately; the service write then confirms or reverts it.
func (m boardModel) cycleStatus() tea.Cmd {
	a, ok := m.selectedAssignment()
	if !ok {
		return nil
	}
	filter := m.store.View().Filter
	return func() tea.Msg {
		ctx := context.Background()
		p, err := m.app.Projects.GetByID(ctx, a.ProjectID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		next := nextStatus(p.Status)
		if err := m.store.Stage(func(b *contract.Board) {
			dropProjectOutsideStatusFilter(b, a.ProjectID, next, filter)
		}); err != nil {
			return boardLoadedMsg{err: err}
		}
		if err := m.store.Commit(ctx, a.ProjectID, service.SetStatus{Status: next}); err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{}
	}
}

func nextStatus(s domain.ProjectStatus) domain.ProjectStatus {
	all := allStatuses()
	for i, v := range all {
		if v == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// dropProjectOutsideStatusFilter removes the project's bars when its new
// status falls outside the active status filter. The next refresh would
// drop them anyway; the optimistic copy just gets there first.
func dropProjectOutsideStatusFilter(b *contract.Board, projectID string, next domain.ProjectStatus, f timeline.Filter) {
	if len(f.Statuses) == 0 {
		return
	}
	for _, s := range f.Statuses {
		if s == next {
			return
		}
	}
	for i := range b.Rows {
		kept := b.Rows[i].Assignments[:0]
		maxLanes := 1
		for _, a := range b.Rows[i].Assignments {
			if a.ProjectID == projectID {
				continue
			}
			kept = append(kept, a)
			if a.Lane+1 > maxLanes {
				maxLanes = a.Lane + 1
			}
		}
		b.Rows[i].Assignments = kept
		b.Rows[i].MaxLanes = maxLanes
	}
}

func (m boardModel) updateFilterForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mediator.Close(overlayFilter)
		m.filterForm = nil
		return m, nil
	}

	updated, cmd := m.filterForm.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		m.filterForm = form
	}

	if m.filterForm.State == huh.StateCompleted {
		m.mediator.Close(overlayFilter)
		m.filterForm = nil
		return m, m.applyFilter()
	}
	if m.filterForm.State == huh.StateAborted {
		m.mediator.Close(overlayFilter)
		m.filterForm = nil
		return m, nil
	}
	return m, cmd
}

func (m *boardModel) buildFilterForm(opts filterOptionsMsg) *huh.Form {
	view := m.store.View()
	m.formUserIDs = view.Filter.UserIDs
	m.formProjectIDs = view.Filter.ProjectIDs
	m.formKrIDs = view.Filter.KrIDs
	m.formStatus = fromStatusFilter(view.Filter.Statuses)
	m.formPrio = fromPriorityFilter(view.Filter.Priorities)

	userOpts := make([]huh.Option[string], 0, len(opts.users))
	for _, u := range opts.users {
		userOpts = append(userOpts, huh.NewOption(fmt.Sprintf("%s (%s)", u.Name, u.DeptOrUnknown()), u.ID))
	}
	projectOpts := make([]huh.Option[string], 0, len(opts.projects))
	for _, p := range opts.projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}
	var krOpts []huh.Option[string]
	for _, set := range opts.okrSets {
		for _, okr := range set.OKRs {
			for _, kr := range okr.KeyResults {
				krOpts = append(krOpts, huh.NewOption(fmt.Sprintf("%s %s", kr.ID, kr.Description), kr.ID))
			}
		}
	}

	statusOpts := make([]huh.Option[string], 0, len(domain.ValidProjectStatuses))
	for _, s := range allStatuses() {
		statusOpts = append(statusOpts, huh.NewOption(string(s), string(s)))
	}
	prioOpts := make([]huh.Option[string], 0, len(domain.ValidPriorities))
	for _, p := range allPriorities() {
		prioOpts = append(prioOpts, huh.NewOption(string(p), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("成员").
				Options(userOpts...).
				Value(&m.formUserIDs),
			huh.NewMultiSelect[string]().
				Title("项目").
				Options(projectOpts...).
				Value(&m.formProjectIDs),
			huh.NewMultiSelect[string]().
				Title("关键结果").
				Options(krOpts...).
				Value(&m.formKrIDs),
			huh.NewMultiSelect[string]().
				Title("状态").
				Options(statusOpts...).
				Value(&m.formStatus),
			huh.NewMultiSelect[string]().
				Title("优先级").
				Options(prioOpts...).
				Value(&m.formPrio),
		),
	).WithShowHelp(false)
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}
	if m.mediator.IsOpen(overlayFilter) && m.filterForm != nil {
		return m.filterForm.View()
	}

	board := m.store.Board()
	if board == nil {
		return formatter.Dim("加载中…")
	}

	chartWidth := m.width - 16
	if chartWidth < 40 {
		chartWidth = formatter.DefaultBoardWidth
	}

	var b strings.Builder
	b.WriteString(formatter.FormatBoard(board, chartWidth))
	b.WriteString("\n")
	if a, ok := m.selectedAssignment(); ok {
		b.WriteString(formatter.Bold("▸ " + a.ProjectName))
		b.WriteString(formatter.Dim(" · " + a.Role.DisplayName()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(formatter.StyleRed.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(formatter.Dim(m.keys.helpLine()))
	return b.String()
}

func allStatuses() []domain.ProjectStatus {
	return []domain.ProjectStatus{
		domain.StatusNotStarted, domain.StatusDiscussion, domain.StatusRequirementsDone,
		domain.StatusReviewDone, domain.StatusProductDesign, domain.StatusInProgress,
		domain.StatusDevDone, domain.StatusTesting, domain.StatusTestDone,
		domain.StatusPaused, domain.StatusLaunched,
	}
}

func allPriorities() []domain.Priority {
	return []domain.Priority{
		domain.PriorityDeptOKR, domain.PriorityCompanyOKR,
		domain.PriorityBusiness, domain.PriorityTechOpt,
	}
}

func toStatusFilter(vals []string) []domain.ProjectStatus {
	out := make([]domain.ProjectStatus, 0, len(vals))
	for _, v := range vals {
		out = append(out, domain.ProjectStatus(v))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func fromStatusFilter(vals []domain.ProjectStatus) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, string(v))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toPriorityFilter(vals []string) []domain.Priority {
	out := make([]domain.Priority, 0, len(vals))
	for _, v := range vals {
		out = append(out, domain.Priority(v))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func fromPriorityFilter(vals []domain.Priority) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, string(v))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
