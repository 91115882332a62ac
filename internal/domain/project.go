package domain

import (
	"time"
)

// TimeSlot is one date-ranged booking of a team member on a project role.
// A member may hold several non-contiguous slots on the same role.
type TimeSlot struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

// Complete reports whether the slot carries both bounds. A slot with only a
// start date cannot be laid out on the board and is skipped, not rejected.
func (s TimeSlot) Complete() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// Inverted reports whether the slot's end precedes its start. The layout
// engine clamps such slots to zero width instead of failing.
func (s TimeSlot) Inverted() bool {
	return s.Complete() && s.EndDate.Before(*s.StartDate)
}

// TeamMember books a user onto one role roster of a project.
//
// TimeSlots is the current multi-slot shape. StartDate/EndDate are the legacy
// single-range fields; they apply only when TimeSlots is empty.
type TeamMember struct {
	UserID    string
	TimeSlots []TimeSlot
	StartDate *time.Time
	EndDate   *time.Time
}

// EffectiveSlots returns the member's slots, coalescing the legacy
// single-range shape into a one-element slot list when TimeSlots is empty.
func (m TeamMember) EffectiveSlots() []TimeSlot {
	if len(m.TimeSlots) > 0 {
		return m.TimeSlots
	}
	if m.StartDate != nil && m.EndDate != nil {
		return []TimeSlot{{StartDate: m.StartDate, EndDate: m.EndDate}}
	}
	return nil
}

// Project is the aggregate tracked on the board: status, OKR linkage,
// progress notes, and four role-keyed rosters with scheduled time slots.
type Project struct {
	ID              string
	Name            string
	Priority        Priority
	Status          ProjectStatus
	BusinessProblem string
	KeyResultIDs    []string
	WeeklyUpdate    string
	LastWeekUpdate  string

	ProductManagers    []TeamMember
	BackendDevelopers  []TeamMember
	FrontendDevelopers []TeamMember
	QATesters          []TeamMember

	ProposedDate *time.Time
	LaunchDate   *time.Time
	Followers    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roster returns the team member list for the given role.
func (p *Project) Roster(r Role) []TeamMember {
	switch r {
	case RoleProductManager:
		return p.ProductManagers
	case RoleBackend:
		return p.BackendDevelopers
	case RoleFrontend:
		return p.FrontendDevelopers
	case RoleQA:
		return p.QATesters
	default:
		return nil
	}
}

// SetRoster replaces the team member list for the given role.
func (p *Project) SetRoster(r Role, members []TeamMember) {
	switch r {
	case RoleProductManager:
		p.ProductManagers = members
	case RoleBackend:
		p.BackendDevelopers = members
	case RoleFrontend:
		p.FrontendDevelopers = members
	case RoleQA:
		p.QATesters = members
	}
}

// RosterUserIDs returns the union of user IDs across all four role rosters.
func (p *Project) RosterUserIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, role := range AllRoles {
		for _, m := range p.Roster(role) {
			ids[m.UserID] = true
		}
	}
	return ids
}

// HasKeyResult reports whether the project links any of the given KR IDs.
func (p *Project) HasKeyResult(krIDs map[string]bool) bool {
	for _, id := range p.KeyResultIDs {
		if krIDs[id] {
			return true
		}
	}
	return false
}
