package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/repository"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Upsert(ctx context.Context, u *domain.User) error {
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return s.users.Upsert(ctx, u)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
