package formatter

import (
	"fmt"
	"strings"

	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "名称", "状态", "优先级", "上线时间"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			shortID(p.ID),
			p.Name,
			StatusStyle(p.Status).Render(string(p.Status)),
			PriorityStyle(p.Priority).Render(string(p.Priority)),
			domain.DateOrUndecided(p.LaunchDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectDetail renders one project with its rosters and schedules.
func FormatProjectDetail(p *domain.Project, userNames map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("状态:"), StatusStyle(p.Status).Render(string(p.Status))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("优先级:"), PriorityStyle(p.Priority).Render(string(p.Priority))))
	if p.BusinessProblem != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("业务问题:"), p.BusinessProblem))
	}
	if len(p.KeyResultIDs) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("关联KR:"), strings.Join(p.KeyResultIDs, ", ")))
	}
	if p.WeeklyUpdate != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("本周进展:"), p.WeeklyUpdate))
	}
	if p.LaunchDate != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("上线时间:"), p.LaunchDate.Format("2006-01-02")))
	}

	for _, role := range domain.AllRoles {
		members := p.Roster(role)
		if len(members) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n", RoleStyle(role).Render(role.DisplayName())))
		for _, m := range members {
			b.WriteString(fmt.Sprintf("  %s %s\n", name(userNames, m.UserID), Dim(formatSlots(m))))
		}
	}
	return b.String()
}

// FormatChangeLog renders change-log entries, newest first.
func FormatChangeLog(entries []domain.ChangeLogEntry, userNames map[string]string) string {
	if len(entries) == 0 {
		return Dim("暂无变更记录") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s %s %s %s → %s\n",
			Dim(e.ChangedAt.Format("2006-01-02 15:04")),
			Bold(name(userNames, e.UserID)),
			StyleHeader.Render(e.Field),
			e.OldValue,
			e.NewValue))
	}
	return b.String()
}

// FormatComments renders project comments, newest first.
func FormatComments(comments []domain.Comment, userNames map[string]string) string {
	if len(comments) == 0 {
		return Dim("暂无评论") + "\n"
	}
	var b strings.Builder
	for _, c := range comments {
		b.WriteString(fmt.Sprintf("%s %s: %s\n",
			Dim(c.CreatedAt.Format("2006-01-02 15:04")),
			Bold(name(userNames, c.UserID)),
			c.Text))
	}
	return b.String()
}

// FormatUserList renders the user directory as a table.
func FormatUserList(users []domain.User) string {
	headers := []string{"ID", "姓名", "部门", "邮箱"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{shortID(u.ID), u.Name, u.DeptOrUnknown(), u.Email})
	}
	return RenderTable(headers, rows)
}

// FormatOkrSets renders every period's objectives with their key results.
func FormatOkrSets(sets []*domain.OkrSet) string {
	var b strings.Builder
	for _, set := range sets {
		b.WriteString(Header(set.PeriodName))
		b.WriteString("\n")
		for _, okr := range set.OKRs {
			b.WriteString(Bold(okr.Objective))
			b.WriteString("\n")
			for _, kr := range okr.KeyResults {
				b.WriteString(fmt.Sprintf("  %s %s\n", Dim(kr.ID), kr.Description))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatSlots(m domain.TeamMember) string {
	slots := m.EffectiveSlots()
	if len(slots) == 0 {
		return "无排期"
	}
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		if !s.Complete() {
			parts = append(parts, "无排期")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s~%s",
			s.StartDate.Format("01.02"), s.EndDate.Format("01.02")))
	}
	return strings.Join(parts, ", ")
}

func name(userNames map[string]string, id string) string {
	return domain.UserNameOr(userNames, id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
