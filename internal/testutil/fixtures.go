package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// Project options

type ProjectOption func(*domain.Project)

func WithStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithPriority(pr domain.Priority) ProjectOption {
	return func(p *domain.Project) { p.Priority = pr }
}

func WithKeyResults(krIDs ...string) ProjectOption {
	return func(p *domain.Project) { p.KeyResultIDs = krIDs }
}

// WithMember books userID on the given role with one complete time slot.
func WithMember(role domain.Role, userID string, start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		member := domain.TeamMember{
			UserID: userID,
			TimeSlots: []domain.TimeSlot{
				{StartDate: &start, EndDate: &end},
			},
		}
		p.SetRoster(role, append(p.Roster(role), member))
	}
}

// WithLegacyMember books userID using the single-range member shape.
func WithLegacyMember(role domain.Role, userID string, start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		member := domain.TeamMember{UserID: userID, StartDate: &start, EndDate: &end}
		p.SetRoster(role, append(p.Roster(role), member))
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  domain.PriorityBusiness,
		Status:    domain.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestUser(name, dept string) domain.User {
	return domain.User{
		ID:       uuid.New().String(),
		Name:     name,
		DeptName: dept,
	}
}

// Date builds a local-midnight date, the form all board math expects.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
