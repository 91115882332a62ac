package service

import (
	"context"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
)

type okrService struct {
	okrs repository.OkrRepo
}

func NewOkrService(okrs repository.OkrRepo) OkrService {
	return &okrService{okrs: okrs}
}

func (s *okrService) ReplaceSet(ctx context.Context, set *domain.OkrSet) error {
	if set.PeriodID == "" {
		return fmt.Errorf("okr set period id is required")
	}
	return s.okrs.ReplaceSet(ctx, set)
}

func (s *okrService) ListSets(ctx context.Context) ([]*domain.OkrSet, error) {
	return s.okrs.ListSets(ctx)
}

func (s *okrService) GetSet(ctx context.Context, periodID string) (*domain.OkrSet, error) {
	return s.okrs.GetSet(ctx, periodID)
}
