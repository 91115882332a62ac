package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/timeline"
)

// boardViewState is the persisted JSON shape of a named view. Date and
// granularity are stored as strings so the saved state stays readable.
type boardViewState struct {
	SelectedUserIDs    []string `json:"selectedUserIds,omitempty"`
	SelectedProjectIDs []string `json:"selectedProjectIds,omitempty"`
	SelectedKrIDs      []string `json:"selectedKrIds,omitempty"`
	SelectedStatuses   []string `json:"selectedStatuses,omitempty"`
	SelectedPriorities []string `json:"selectedPriorities,omitempty"`
	Granularity        string   `json:"granularity,omitempty"`
	ViewDate           string   `json:"viewDate,omitempty"`
}

type boardService struct {
	projects repository.ProjectRepo
	users    repository.UserRepo
	views    repository.ViewStateRepo
	engine   *timeline.Engine
	observer OpObserver
	now      func() time.Time
}

// NewBoardService wires the board computation to its persisted view state.
// The now function supplies "today" for anchor defaults and resets.
func NewBoardService(projects repository.ProjectRepo, users repository.UserRepo, views repository.ViewStateRepo, engine *timeline.Engine, now func() time.Time, observers ...OpObserver) BoardService {
	if now == nil {
		now = time.Now
	}
	return &boardService{
		projects: projects,
		users:    users,
		views:    views,
		engine:   engine,
		observer: opObserverOrNoop(observers),
		now:      now,
	}
}

func (s *boardService) Board(ctx context.Context, viewName string) (board *contract.Board, view BoardView, err error) {
	started := time.Now()
	var extra []any
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Op:    "compute-board",
			View:  viewName,
			Took:  time.Since(started),
			Err:   err,
			Extra: extra,
		})
	}()

	view, err = s.loadView(ctx, viewName)
	if err != nil {
		return nil, BoardView{}, err
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, BoardView{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, BoardView{}, err
	}
	extra = append(extra, "project_count", len(projects), "user_count", len(users))

	board = s.engine.Compute(timeline.Input{
		Projects:    projects,
		Users:       users,
		Filter:      view.Filter,
		Granularity: view.Granularity,
		Anchor:      view.Anchor,
	})
	extra = append(extra, "row_count", len(board.Rows))
	return board, view, nil
}

func (s *boardService) SetFilter(ctx context.Context, viewName string, f timeline.Filter) error {
	view, err := s.loadView(ctx, viewName)
	if err != nil {
		return err
	}
	view.Filter = f
	return s.saveView(ctx, viewName, view)
}

func (s *boardService) Navigate(ctx context.Context, viewName string, delta int) error {
	view, err := s.loadView(ctx, viewName)
	if err != nil {
		return err
	}
	view.Anchor = timeline.ShiftAnchor(view.Granularity, view.Anchor, delta)
	return s.saveView(ctx, viewName, view)
}

func (s *boardService) SetGranularity(ctx context.Context, viewName string, g timeline.Granularity) error {
	view, err := s.loadView(ctx, viewName)
	if err != nil {
		return err
	}
	view.Granularity = g
	view.Anchor = timeline.ResetAnchor(s.now())
	return s.saveView(ctx, viewName, view)
}

// loadView returns the persisted state for the view, or the default week
// view anchored on today. A saved state that fails to decode is treated as
// absent rather than blocking the board.
func (s *boardService) loadView(ctx context.Context, viewName string) (BoardView, error) {
	view := BoardView{
		Granularity: timeline.GranularityWeek,
		Anchor:      timeline.ResetAnchor(s.now()),
	}

	saved, err := s.views.Get(ctx, viewName)
	if err != nil {
		return BoardView{}, err
	}
	if saved == nil {
		return view, nil
	}

	var state boardViewState
	if err := json.Unmarshal([]byte(saved.State), &state); err != nil {
		return view, nil
	}

	view.Filter = timeline.Filter{
		UserIDs:    state.SelectedUserIDs,
		ProjectIDs: state.SelectedProjectIDs,
		KrIDs:      state.SelectedKrIDs,
		Statuses:   toStatuses(state.SelectedStatuses),
		Priorities: toPriorities(state.SelectedPriorities),
	}
	if state.Granularity == string(timeline.GranularityMonth) {
		view.Granularity = timeline.GranularityMonth
	}
	if state.ViewDate != "" {
		if anchor, err := time.ParseInLocation("2006-01-02", state.ViewDate, time.Local); err == nil {
			view.Anchor = anchor
		}
	}
	return view, nil
}

func (s *boardService) saveView(ctx context.Context, viewName string, view BoardView) error {
	state := boardViewState{
		SelectedUserIDs:    view.Filter.UserIDs,
		SelectedProjectIDs: view.Filter.ProjectIDs,
		SelectedKrIDs:      view.Filter.KrIDs,
		SelectedStatuses:   fromStatuses(view.Filter.Statuses),
		SelectedPriorities: fromPriorities(view.Filter.Priorities),
		Granularity:        string(view.Granularity),
		ViewDate:           view.Anchor.Format("2006-01-02"),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	return s.views.Put(ctx, &repository.ViewState{ViewName: viewName, State: string(data)})
}

func toStatuses(vals []string) []domain.ProjectStatus {
	if len(vals) == 0 {
		return nil
	}
	out := make([]domain.ProjectStatus, len(vals))
	for i, v := range vals {
		out[i] = domain.ProjectStatus(v)
	}
	return out
}

func fromStatuses(vals []domain.ProjectStatus) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func toPriorities(vals []string) []domain.Priority {
	if len(vals) == 0 {
		return nil
	}
	out := make([]domain.Priority, len(vals))
	for i, v := range vals {
		out[i] = domain.Priority(v)
	}
	return out
}

func fromPriorities(vals []domain.Priority) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
