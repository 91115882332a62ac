package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/netbadge-ctrl/okboard/internal/cli/formatter"
	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/netbadge-ctrl/okboard/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// roleValue validates --role while the flag set is being parsed.
type roleValue struct {
	role domain.Role
}

var _ pflag.Value = (*roleValue)(nil)

func (v *roleValue) String() string { return string(v.role) }

func (v *roleValue) Type() string { return "role" }

func (v *roleValue) Set(s string) error {
	role, err := parseRole(s)
	if err != nil {
		return err
	}
	v.role = role
	return nil
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact ID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 2. Exact name match
	for _, p := range projects {
		if p.Name == input {
			return p.ID, nil
		}
	}

	// 3. ID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func userNameMap(ctx context.Context, app *App) (map[string]string, error) {
	users, err := app.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectSetCmd(app),
		newProjectScheduleCmd(app),
		newProjectCommentCmd(app),
		newProjectLogCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, status, priority, problem string
	var krIDs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:            name,
				Status:          domain.ProjectStatus(status),
				Priority:        domain.Priority(priority),
				BusinessProblem: problem,
				KeyResultIDs:    krIDs,
			}
			if status != "" && !domain.ValidProjectStatuses[p.Status] {
				return fmt.Errorf("invalid status %q", status)
			}
			if priority != "" && !domain.ValidPriorities[p.Priority] {
				return fmt.Errorf("invalid priority %q", priority)
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("已创建项目 %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&status, "status", "", "Initial status")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&problem, "problem", "", "Business problem statement")
	cmd.Flags().StringSliceVar(&krIDs, "kr", nil, "Linked key result IDs")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("暂无项目")
				return nil
			}
			fmt.Print(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <project>",
		Aliases: []string{"show"},
		Short:   "Show one project in detail",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			names, err := userNameMap(ctx, app)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProjectDetail(p, names))
			return nil
		},
	}
}

// newProjectSetCmd maps each updatable field to its typed update operation.
func newProjectSetCmd(app *App) *cobra.Command {
	var name, status, priority, weekly, problem, launch, proposed string
	var krIDs, followers []string

	cmd := &cobra.Command{
		Use:   "set <project>",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var ops []service.UpdateOp
			if cmd.Flags().Changed("name") {
				ops = append(ops, service.SetName{Name: name})
			}
			if cmd.Flags().Changed("status") {
				s := domain.ProjectStatus(status)
				if !domain.ValidProjectStatuses[s] {
					return fmt.Errorf("invalid status %q", status)
				}
				ops = append(ops, service.SetStatus{Status: s})
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				if !domain.ValidPriorities[p] {
					return fmt.Errorf("invalid priority %q", priority)
				}
				ops = append(ops, service.SetPriority{Priority: p})
			}
			if cmd.Flags().Changed("weekly") {
				ops = append(ops, service.SetWeeklyUpdate{Text: weekly})
			}
			if cmd.Flags().Changed("problem") {
				ops = append(ops, service.SetBusinessProblem{Text: problem})
			}
			if cmd.Flags().Changed("launch") {
				date, err := parseDateFlag(launch)
				if err != nil {
					return err
				}
				ops = append(ops, service.SetLaunchDate{Date: date})
			}
			if cmd.Flags().Changed("proposed") {
				date, err := parseDateFlag(proposed)
				if err != nil {
					return err
				}
				ops = append(ops, service.SetProposedDate{Date: date})
			}
			if cmd.Flags().Changed("kr") {
				ops = append(ops, service.SetKeyResults{KrIDs: krIDs})
			}
			if cmd.Flags().Changed("follower") {
				ops = append(ops, service.SetFollowers{UserIDs: followers})
			}
			if len(ops) == 0 {
				return fmt.Errorf("nothing to update")
			}

			for _, op := range ops {
				if _, err := app.Projects.ApplyUpdate(ctx, id, app.ActorID, op); err != nil {
					return err
				}
			}
			fmt.Println("已更新")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&weekly, "weekly", "", "Weekly progress note")
	cmd.Flags().StringVar(&problem, "problem", "", "Business problem statement")
	cmd.Flags().StringVar(&launch, "launch", "", "Launch date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&proposed, "proposed", "", "Proposed date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringSliceVar(&krIDs, "kr", nil, "Linked key result IDs")
	cmd.Flags().StringSliceVar(&followers, "follower", nil, "Follower user IDs")

	return cmd
}

// newProjectScheduleCmd replaces one role roster with the given bookings.
func newProjectScheduleCmd(app *App) *cobra.Command {
	var role roleValue
	var members []string

	cmd := &cobra.Command{
		Use:   "schedule <project>",
		Short: "Replace a role roster with new bookings",
		Long: `Replace a role roster. Each --member takes the form
user-id=START..END[,START..END...] with YYYY-MM-DD dates, or a bare
user-id for a booking without a schedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			roster := make([]domain.TeamMember, 0, len(members))
			for _, spec := range members {
				member, err := parseMemberSpec(spec)
				if err != nil {
					return err
				}
				roster = append(roster, member)
			}

			op := service.SetRoster{Role: role.role, Members: roster}
			if _, err := app.Projects.ApplyUpdate(ctx, id, app.ActorID, op); err != nil {
				return err
			}
			fmt.Printf("已更新%s排期\n", role.role.DisplayName())
			return nil
		},
	}

	cmd.Flags().Var(&role, "role", "Role: pm, backend, frontend or qa")
	cmd.Flags().StringArrayVar(&members, "member", nil, "Roster booking (repeatable)")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newProjectCommentCmd(app *App) *cobra.Command {
	var mentions []string

	cmd := &cobra.Command{
		Use:   "comment <project> <text>",
		Short: "Add a comment to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Activity.AddComment(ctx, id, app.ActorID, args[1], mentions); err != nil {
				return err
			}
			fmt.Println("已评论")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&mentions, "mention", nil, "Mentioned user IDs")
	return cmd
}

func newProjectLogCmd(app *App) *cobra.Command {
	var comments bool

	cmd := &cobra.Command{
		Use:   "log <project>",
		Short: "Show a project's change log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			names, err := userNameMap(ctx, app)
			if err != nil {
				return err
			}
			if comments {
				list, err := app.Activity.ListComments(ctx, id)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatComments(list, names))
				return nil
			}
			entries, err := app.Activity.ListChanges(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatChangeLog(entries, names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&comments, "comments", false, "Show comments instead of field changes")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("已删除")
			return nil
		},
	}
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

func parseRole(s string) (domain.Role, error) {
	switch s {
	case "pm", "product":
		return domain.RoleProductManager, nil
	case "backend":
		return domain.RoleBackend, nil
	case "frontend":
		return domain.RoleFrontend, nil
	case "qa", "test":
		return domain.RoleQA, nil
	default:
		return "", fmt.Errorf("unknown role %q (expected pm, backend, frontend or qa)", s)
	}
}

// parseMemberSpec parses "user-id=2025-03-03..2025-03-14,2025-04-01..2025-04-11"
// into a roster booking with one slot per range.
func parseMemberSpec(spec string) (domain.TeamMember, error) {
	userID, ranges, found := strings.Cut(spec, "=")
	if userID == "" {
		return domain.TeamMember{}, fmt.Errorf("invalid member spec %q", spec)
	}
	member := domain.TeamMember{UserID: userID}
	if !found || ranges == "" {
		return member, nil
	}

	for _, r := range strings.Split(ranges, ",") {
		startStr, endStr, ok := strings.Cut(r, "..")
		if !ok {
			return domain.TeamMember{}, fmt.Errorf("invalid schedule range %q in %q", r, spec)
		}
		start, err := parseDateFlag(startStr)
		if err != nil {
			return domain.TeamMember{}, err
		}
		end, err := parseDateFlag(endStr)
		if err != nil {
			return domain.TeamMember{}, err
		}
		member.TimeSlots = append(member.TimeSlots, domain.TimeSlot{StartDate: start, EndDate: end})
	}
	return member, nil
}
