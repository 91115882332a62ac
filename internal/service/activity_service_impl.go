package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
)

type activityService struct {
	activity repository.ActivityRepo
	projects repository.ProjectRepo
}

func NewActivityService(activity repository.ActivityRepo, projects repository.ProjectRepo) ActivityService {
	return &activityService{activity: activity, projects: projects}
}

func (s *activityService) AddComment(ctx context.Context, projectID, userID, text string, mentions []string) (*domain.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		Text:      text,
		Mentions:  mentions,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.activity.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *activityService) ListComments(ctx context.Context, projectID string) ([]domain.Comment, error) {
	return s.activity.ListComments(ctx, projectID)
}

func (s *activityService) ListChanges(ctx context.Context, projectID string) ([]domain.ChangeLogEntry, error) {
	return s.activity.ListChanges(ctx, projectID)
}
