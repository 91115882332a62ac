package cli

import (
	"context"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/service"
)

// boardStore holds the board shown by the TUI and implements optimistic
// updates: an edit is applied to the displayed board immediately, then
// written through the service; if the write fails the previous board is
// restored. At most one write is in flight at a time.
type boardStore struct {
	boards   service.BoardService
	projects service.ProjectService
	viewName string
	actorID  string

	board *contract.Board
	view  service.BoardView

	snapshot *contract.Board // pre-edit board kept for rollback
	inflight bool
}

func newBoardStore(boards service.BoardService, projects service.ProjectService, viewName, actorID string) *boardStore {
	return &boardStore{
		boards:   boards,
		projects: projects,
		viewName: viewName,
		actorID:  actorID,
	}
}

// Refresh reloads the board and view state from the service.
func (s *boardStore) Refresh(ctx context.Context) error {
	board, view, err := s.boards.Board(ctx, s.viewName)
	if err != nil {
		return err
	}
	s.board = board
	s.view = view
	return nil
}

func (s *boardStore) Board() *contract.Board { return s.board }

func (s *boardStore) View() service.BoardView { return s.view }

func (s *boardStore) WriteInFlight() bool { return s.inflight }

// Stage applies an optimistic mutation to a copy of the displayed board and
// snapshots the previous one. It fails when a write is already in flight;
// the caller surfaces that instead of queueing edits.
func (s *boardStore) Stage(mutate func(*contract.Board)) error {
	if s.inflight {
		return fmt.Errorf("a change is still being saved")
	}
	if s.board == nil {
		return fmt.Errorf("board not loaded")
	}
	s.snapshot = s.board
	working := cloneBoard(s.board)
	mutate(working)
	s.board = working
	s.inflight = true
	return nil
}

// Commit writes the staged change through the project service and reloads
// the board. A failed write also reloads, replacing the optimistic board
// with whatever the service actually holds; only when that reload fails too
// does the pre-edit snapshot come back.
func (s *boardStore) Commit(ctx context.Context, projectID string, op service.UpdateOp) error {
	if !s.inflight {
		return fmt.Errorf("no staged change to commit")
	}
	defer func() {
		s.snapshot = nil
		s.inflight = false
	}()

	if _, err := s.projects.ApplyUpdate(ctx, projectID, s.actorID, op); err != nil {
		if rerr := s.Refresh(ctx); rerr != nil {
			s.board = s.snapshot
		}
		return err
	}
	return s.Refresh(ctx)
}

// Abort discards a staged change and restores the pre-edit board.
func (s *boardStore) Abort() {
	if !s.inflight {
		return
	}
	s.board = s.snapshot
	s.snapshot = nil
	s.inflight = false
}

// cloneBoard copies the board deeply enough that mutating the copy's rows
// and assignments never touches the original, which the engine may still
// hold in its memo.
func cloneBoard(b *contract.Board) *contract.Board {
	clone := &contract.Board{Window: b.Window}
	clone.Window.Headers = append([]contract.Header(nil), b.Window.Headers...)
	clone.Window.Dividers = append([]contract.Divider(nil), b.Window.Dividers...)
	clone.Rows = make([]contract.BoardRow, len(b.Rows))
	for i, row := range b.Rows {
		clone.Rows[i] = contract.BoardRow{
			User:        row.User,
			MaxLanes:    row.MaxLanes,
			Assignments: append([]contract.PositionedAssignment(nil), row.Assignments...),
		}
	}
	return clone
}
