package service

import (
	"context"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// ApplyUpdate runs one typed update operation against the project,
	// recording a change-log entry for loggable fields.
	ApplyUpdate(ctx context.Context, projectID, actorID string, op UpdateOp) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// BoardView is the navigable state of a named board view, persisted
// between sessions.
type BoardView struct {
	Filter      timeline.Filter
	Granularity timeline.Granularity
	Anchor      time.Time
}

type BoardService interface {
	// Board computes the lane-packed schedule for the named view using its
	// persisted filter and navigation state.
	Board(ctx context.Context, viewName string) (*contract.Board, BoardView, error)
	SetFilter(ctx context.Context, viewName string, f timeline.Filter) error
	// Navigate shifts the anchor by delta granularity units (weeks or months).
	Navigate(ctx context.Context, viewName string, delta int) error
	// SetGranularity switches the scale and resets the anchor to today.
	SetGranularity(ctx context.Context, viewName string, g timeline.Granularity) error
}

type UserService interface {
	Upsert(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type OkrService interface {
	ReplaceSet(ctx context.Context, set *domain.OkrSet) error
	ListSets(ctx context.Context) ([]*domain.OkrSet, error)
	GetSet(ctx context.Context, periodID string) (*domain.OkrSet, error)
}

type ActivityService interface {
	AddComment(ctx context.Context, projectID, userID, text string, mentions []string) (*domain.Comment, error)
	ListComments(ctx context.Context, projectID string) ([]domain.Comment, error)
	ListChanges(ctx context.Context, projectID string) ([]domain.ChangeLogEntry, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	UserCount    int
	OkrSetCount  int
	ProjectCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
}
