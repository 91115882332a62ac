package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// UpdateOp is one typed project mutation. Each updatable field gets its own
// variant carrying its own payload; a single reducer applies them, so there
// is no stringly-typed field dispatch anywhere.
//
// Field returns the change-log label for the operation, or "" for fields
// that are not logged. Render formats the op's field as currently held by
// the project, used for the old/new values of the change-log entry.
type UpdateOp interface {
	Field() string
	Apply(p *domain.Project)
	Render(p *domain.Project, userNames map[string]string) string
}

type SetName struct{ Name string }

func (SetName) Field() string { return "项目名称" }
func (op SetName) Apply(p *domain.Project) {
	p.Name = op.Name
}
func (SetName) Render(p *domain.Project, _ map[string]string) string { return p.Name }

type SetStatus struct{ Status domain.ProjectStatus }

func (SetStatus) Field() string { return "状态" }
func (op SetStatus) Apply(p *domain.Project) {
	p.Status = op.Status
}
func (SetStatus) Render(p *domain.Project, _ map[string]string) string { return string(p.Status) }

type SetPriority struct{ Priority domain.Priority }

func (SetPriority) Field() string { return "优先级" }
func (op SetPriority) Apply(p *domain.Project) {
	p.Priority = op.Priority
}
func (SetPriority) Render(p *domain.Project, _ map[string]string) string { return string(p.Priority) }

type SetWeeklyUpdate struct{ Text string }

func (SetWeeklyUpdate) Field() string { return "本周进展/问题" }
func (op SetWeeklyUpdate) Apply(p *domain.Project) {
	p.WeeklyUpdate = op.Text
}
func (SetWeeklyUpdate) Render(p *domain.Project, _ map[string]string) string { return p.WeeklyUpdate }

type SetBusinessProblem struct{ Text string }

func (SetBusinessProblem) Field() string { return "" } // not logged
func (op SetBusinessProblem) Apply(p *domain.Project) {
	p.BusinessProblem = op.Text
}
func (SetBusinessProblem) Render(p *domain.Project, _ map[string]string) string {
	return p.BusinessProblem
}

type SetLaunchDate struct{ Date *time.Time }

func (SetLaunchDate) Field() string { return "上线时间" }
func (op SetLaunchDate) Apply(p *domain.Project) {
	p.LaunchDate = op.Date
}
func (SetLaunchDate) Render(p *domain.Project, _ map[string]string) string {
	return domain.DateOrUndecided(p.LaunchDate)
}

type SetProposedDate struct{ Date *time.Time }

func (SetProposedDate) Field() string { return "" }
func (op SetProposedDate) Apply(p *domain.Project) {
	p.ProposedDate = op.Date
}
func (SetProposedDate) Render(p *domain.Project, _ map[string]string) string {
	return domain.DateOrUndecided(p.ProposedDate)
}

type SetKeyResults struct{ KrIDs []string }

func (SetKeyResults) Field() string { return "" }
func (op SetKeyResults) Apply(p *domain.Project) {
	p.KeyResultIDs = op.KrIDs
}
func (op SetKeyResults) Render(p *domain.Project, _ map[string]string) string {
	return strings.Join(p.KeyResultIDs, ", ")
}

type SetFollowers struct{ UserIDs []string }

func (SetFollowers) Field() string { return "" }
func (op SetFollowers) Apply(p *domain.Project) {
	p.Followers = op.UserIDs
}
func (op SetFollowers) Render(p *domain.Project, names map[string]string) string {
	var parts []string
	for _, id := range p.Followers {
		parts = append(parts, domain.UserNameOr(names, id))
	}
	return strings.Join(parts, ", ")
}

// SetRoster replaces one role roster, schedules included.
type SetRoster struct {
	Role    domain.Role
	Members []domain.TeamMember
}

func (op SetRoster) Field() string {
	switch op.Role {
	case domain.RoleProductManager:
		return "产品经理"
	case domain.RoleBackend:
		return "后端研发"
	case domain.RoleFrontend:
		return "前端研发"
	case domain.RoleQA:
		return "测试"
	default:
		return ""
	}
}

func (op SetRoster) Apply(p *domain.Project) {
	p.SetRoster(op.Role, op.Members)
}

func (op SetRoster) Render(p *domain.Project, names map[string]string) string {
	members := p.Roster(op.Role)
	if len(members) == 0 {
		return "无"
	}
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, formatMemberSchedule(m, names))
	}
	return strings.Join(parts, ", ")
}

// formatMemberSchedule renders a roster member as 姓名(MM.DD~MM.DD), or
// 姓名(无排期) when no complete slot exists. The first slot represents the
// member in the change log.
func formatMemberSchedule(m domain.TeamMember, names map[string]string) string {
	name := domain.UserNameOr(names, m.UserID)
	slots := m.EffectiveSlots()
	if len(slots) == 0 || !slots[0].Complete() {
		return name + "(无排期)"
	}
	return fmt.Sprintf("%s(%s~%s)",
		name,
		slots[0].StartDate.Format("01.02"),
		slots[0].EndDate.Format("01.02"))
}
