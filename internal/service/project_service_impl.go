package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	users    repository.UserRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, users repository.UserRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, users: users, uow: uow}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.StatusNotStarted
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityBusiness
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// ApplyUpdate is the single reducer for all typed update operations. It
// renders the affected field before and after applying the op; when the op
// is loggable and the value actually changed, a change-log entry is written
// in the same transaction as the project update.
func (s *projectService) ApplyUpdate(ctx context.Context, projectID, actorID string, op UpdateOp) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	oldValue := op.Render(p, names)
	op.Apply(p)
	newValue := op.Render(p, names)
	p.UpdatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Update(ctx, p); err != nil {
			return err
		}
		if op.Field() == "" || oldValue == newValue {
			return nil
		}
		return repository.NewSQLiteActivityRepo(tx).AddChange(ctx, &domain.ChangeLogEntry{
			ID:        uuid.New().String(),
			ProjectID: p.ID,
			UserID:    actorID,
			Field:     op.Field(),
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

func (s *projectService) userNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
