package repository

import (
	"context"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Update replaces the whole aggregate, rosters and slots included.
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type OkrRepo interface {
	ReplaceSet(ctx context.Context, set *domain.OkrSet) error
	GetSet(ctx context.Context, periodID string) (*domain.OkrSet, error)
	ListSets(ctx context.Context) ([]*domain.OkrSet, error)
}

type ActivityRepo interface {
	AddComment(ctx context.Context, c *domain.Comment) error
	ListComments(ctx context.Context, projectID string) ([]domain.Comment, error)
	AddChange(ctx context.Context, e *domain.ChangeLogEntry) error
	ListChanges(ctx context.Context, projectID string) ([]domain.ChangeLogEntry, error)
}

// ViewState is the persisted UI state of one named view: active filters
// plus the board's granularity and anchor date.
type ViewState struct {
	ViewName  string
	State     string // JSON payload owned by the service layer
	UpdatedAt time.Time
}

type ViewStateRepo interface {
	Get(ctx context.Context, viewName string) (*ViewState, error)
	Put(ctx context.Context, s *ViewState) error
}
