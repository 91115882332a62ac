package timeline

import (
	"sort"

	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter holds the active board restrictions. An empty slice means no
// restriction on that dimension; non-empty filters compose with AND.
type Filter struct {
	UserIDs    []string
	ProjectIDs []string
	KrIDs      []string
	Statuses   []domain.ProjectStatus
	Priorities []domain.Priority
}

// Empty reports whether no restriction is active on any dimension.
func (f Filter) Empty() bool {
	return len(f.UserIDs) == 0 && len(f.ProjectIDs) == 0 && len(f.KrIDs) == 0 &&
		len(f.Statuses) == 0 && len(f.Priorities) == 0
}

func toSet[T comparable](vals []T) map[T]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[T]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

// FilterProjects applies the KR, project, status and priority restrictions.
func FilterProjects(projects []*domain.Project, f Filter) []*domain.Project {
	krSet := toSet(f.KrIDs)
	projectSet := toSet(f.ProjectIDs)
	statusSet := toSet(f.Statuses)
	prioritySet := toSet(f.Priorities)

	var out []*domain.Project
	for _, p := range projects {
		if krSet != nil && !p.HasKeyResult(krSet) {
			continue
		}
		if projectSet != nil && !projectSet[p.ID] {
			continue
		}
		if statusSet != nil && !statusSet[p.Status] {
			continue
		}
		if prioritySet != nil && !prioritySet[p.Priority] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// VisibleUsers applies the user restriction, narrows to roster members of
// the surviving projects when a project or KR filter is active, and orders
// the result by (department, name) under zh-Hans collation. Users without a
// department sort in the 未知部门 bucket.
func VisibleUsers(users []domain.User, surviving []*domain.Project, f Filter) []domain.User {
	userSet := toSet(f.UserIDs)

	var out []domain.User
	for _, u := range users {
		if userSet != nil && !userSet[u.ID] {
			continue
		}
		out = append(out, u)
	}

	if len(f.ProjectIDs) > 0 || len(f.KrIDs) > 0 {
		assigned := make(map[string]bool)
		for _, p := range surviving {
			for id := range p.RosterUserIDs() {
				assigned[id] = true
			}
		}
		filtered := out[:0]
		for _, u := range out {
			if assigned[u.ID] {
				filtered = append(filtered, u)
			}
		}
		out = filtered
	}

	c := collate.New(language.MustParse("zh-Hans"))
	sort.SliceStable(out, func(i, j int) bool {
		deptI, deptJ := out[i].DeptOrUnknown(), out[j].DeptOrUnknown()
		if deptI != deptJ {
			return c.CompareString(deptI, deptJ) < 0
		}
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// ExtractAssignments flattens the user's bookings across the surviving
// projects into layout assignments, one per complete time slot. Rosters are
// walked in the canonical role order per project, so equal-start-date ties
// keep a deterministic roster order under the stable sort. Slots missing an
// end date are skipped.
func ExtractAssignments(user domain.User, projects []*domain.Project) []contract.Assignment {
	var out []contract.Assignment
	for _, p := range projects {
		for _, role := range domain.AllRoles {
			for _, m := range p.Roster(role) {
				if m.UserID != user.ID {
					continue
				}
				for _, slot := range m.EffectiveSlots() {
					if !slot.Complete() {
						continue
					}
					out = append(out, contract.Assignment{
						ProjectID:   p.ID,
						ProjectName: p.Name,
						Role:        role,
						StartDate:   Normalize(*slot.StartDate),
						EndDate:     Normalize(*slot.EndDate),
						Description: slot.Description,
					})
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
