// Package timeline computes the Gantt board: it resolves the visible time
// window, flattens project rosters into per-user assignment intervals,
// packs them into non-overlapping lanes, and projects the result into
// render geometry. Every computation is a pure function of its input.
package timeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// Input is everything one board computation depends on.
type Input struct {
	Projects    []*domain.Project
	Users       []domain.User
	Filter      Filter
	Granularity Granularity
	Anchor      time.Time
}

// Engine computes boards. It memoizes the most recent result keyed by an
// input hash; memoization is purely an optimization and correctness never
// depends on it.
type Engine struct {
	logger *slog.Logger

	mu       sync.Mutex
	memoKey  uint64
	memoized *contract.Board
}

// NewEngine returns an Engine logging non-fatal degradations to logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Compute produces the board for the given input. Empty project or user
// lists yield an empty row set with a valid window. A malformed assignment
// never prevents laying out the others.
func (e *Engine) Compute(in Input) *contract.Board {
	key, keyOK := e.hashInput(in)
	if keyOK {
		e.mu.Lock()
		if e.memoized != nil && e.memoKey == key {
			cached := e.memoized
			e.mu.Unlock()
			return cached
		}
		e.mu.Unlock()
	}

	window := ResolveWindow(in.Granularity, in.Anchor)
	surviving := FilterProjects(in.Projects, in.Filter)
	users := VisibleUsers(in.Users, surviving, in.Filter)

	rows := make([]contract.BoardRow, 0, len(users))
	for _, user := range users {
		assignments := ExtractAssignments(user, surviving)
		laneOf, maxLanes := PackLanes(assignments)

		positioned := make([]contract.PositionedAssignment, 0, len(assignments))
		for i, a := range assignments {
			// Debug, not Warn: a bad slot would otherwise re-log on
			// every navigation keypress until the data is fixed.
			if a.EndDate.Before(a.StartDate) {
				e.logger.Debug("assignment range inverted, clamping to zero width",
					"user_id", user.ID,
					"project_id", a.ProjectID,
					"start", a.StartDate.Format("2006-01-02"),
					"end", a.EndDate.Format("2006-01-02"))
			}
			pa, ok := Position(window, a, laneOf[i])
			if !ok {
				continue
			}
			positioned = append(positioned, pa)
		}

		rows = append(rows, contract.BoardRow{
			User:        user,
			Assignments: positioned,
			MaxLanes:    maxLanes,
		})
	}

	board := &contract.Board{Window: window, Rows: rows}

	if keyOK {
		e.mu.Lock()
		e.memoKey = key
		e.memoized = board
		e.mu.Unlock()
	}
	return board
}

// hashInput derives the memo key. UseStringer makes time.Time values hash
// by their string form; without it their unexported fields would be
// invisible to the hash and stale boards could be served.
func (e *Engine) hashInput(in Input) (uint64, bool) {
	key, err := hashstructure.Hash(in, hashstructure.FormatV2, &hashstructure.HashOptions{
		UseStringer: true,
	})
	if err != nil {
		e.logger.Warn("hashing board input failed, memoization skipped", "error", err)
		return 0, false
	}
	return key, true
}
