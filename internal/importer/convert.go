package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// ConvertedSeed is the domain-level result of a successful conversion.
type ConvertedSeed struct {
	Users    []domain.User
	OkrSets  []*domain.OkrSet
	Projects []*domain.Project
}

// ConvertSchema turns a validated import schema into domain objects.
// Projects without an id get a generated one; missing status and priority
// fall back to their defaults.
func ConvertSchema(schema *ImportSchema) *ConvertedSeed {
	seed := &ConvertedSeed{}

	for _, u := range schema.Users {
		seed.Users = append(seed.Users, domain.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			DeptName: u.DeptName,
		})
	}

	for _, s := range schema.OkrSets {
		set := &domain.OkrSet{PeriodID: s.PeriodID, PeriodName: s.PeriodName}
		for _, o := range s.Okrs {
			okr := domain.OKR{ID: o.ID, Objective: o.Objective}
			if okr.ID == "" {
				okr.ID = uuid.New().String()
			}
			for _, kr := range o.KeyResults {
				okr.KeyResults = append(okr.KeyResults, domain.KeyResult{
					ID:          kr.ID,
					Description: kr.Description,
				})
			}
			set.OKRs = append(set.OKRs, okr)
		}
		seed.OkrSets = append(seed.OkrSets, set)
	}

	now := time.Now().UTC()
	for _, p := range schema.Projects {
		project := &domain.Project{
			ID:              p.ID,
			Name:            p.Name,
			Priority:        domain.Priority(p.Priority),
			Status:          domain.ProjectStatus(p.Status),
			BusinessProblem: p.BusinessProblem,
			KeyResultIDs:    p.KeyResultIDs,
			WeeklyUpdate:    p.WeeklyUpdate,
			LastWeekUpdate:  p.LastWeekUpdate,
			ProposedDate:    parseDatePtr(p.ProposedDate),
			LaunchDate:      parseDatePtr(p.LaunchDate),
			Followers:       p.Followers,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if project.ID == "" {
			project.ID = uuid.New().String()
		}
		if project.Status == "" {
			project.Status = domain.StatusNotStarted
		}
		if project.Priority == "" {
			project.Priority = domain.PriorityBusiness
		}

		project.SetRoster(domain.RoleProductManager, convertRoster(p.ProductManagers))
		project.SetRoster(domain.RoleBackend, convertRoster(p.BackendDevelopers))
		project.SetRoster(domain.RoleFrontend, convertRoster(p.FrontendDevelopers))
		project.SetRoster(domain.RoleQA, convertRoster(p.QaTesters))

		seed.Projects = append(seed.Projects, project)
	}

	return seed
}

func convertRoster(members []MemberImport) []domain.TeamMember {
	if len(members) == 0 {
		return nil
	}
	out := make([]domain.TeamMember, 0, len(members))
	for _, m := range members {
		member := domain.TeamMember{
			UserID:    m.UserID,
			StartDate: parseDatePtr(m.StartDate),
			EndDate:   parseDatePtr(m.EndDate),
		}
		for _, s := range m.TimeSlots {
			member.TimeSlots = append(member.TimeSlots, domain.TimeSlot{
				StartDate:   parseDatePtr(s.StartDate),
				EndDate:     parseDatePtr(s.EndDate),
				Description: s.Description,
			})
		}
		out = append(out, member)
	}
	return out
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", *s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
