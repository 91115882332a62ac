package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo. The project aggregate spans
// three tables: projects, project_members and member_slots; writes that
// cross them should run inside a UnitOfWork.
type SQLiteProjectRepo struct {
	conn db.DBTX
}

// NewSQLiteProjectRepo creates a ProjectRepo on the given connection,
// which may be a *sql.DB or a transaction.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn}
}

const projectColumns = `id, name, priority, status, business_problem, key_result_ids,
	weekly_update, last_week_update, proposed_date, launch_date, followers, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Priority),
		string(p.Status),
		p.BusinessProblem,
		encodeStrings(p.KeyResultIDs),
		p.WeeklyUpdate,
		p.LastWeekUpdate,
		nullableTimeToString(p.ProposedDate, dateLayout),
		nullableTimeToString(p.LaunchDate, dateLayout),
		encodeStrings(p.Followers),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.insertRosters(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRosters(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	for _, p := range projects {
		if err := r.loadRosters(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, priority = ?, status = ?, business_problem = ?,
		key_result_ids = ?, weekly_update = ?, last_week_update = ?, proposed_date = ?,
		launch_date = ?, followers = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		p.Name,
		string(p.Priority),
		string(p.Status),
		p.BusinessProblem,
		encodeStrings(p.KeyResultIDs),
		p.WeeklyUpdate,
		p.LastWeekUpdate,
		nullableTimeToString(p.ProposedDate, dateLayout),
		nullableTimeToString(p.LaunchDate, dateLayout),
		encodeStrings(p.Followers),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	// Rosters are replaced wholesale; member_slots cascade with the members.
	if _, err := r.conn.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing project rosters: %w", err)
	}
	return r.insertRosters(ctx, p)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) insertRosters(ctx context.Context, p *domain.Project) error {
	for _, role := range domain.AllRoles {
		for i, m := range p.Roster(role) {
			memberID := uuid.New().String()
			_, err := r.conn.ExecContext(ctx,
				`INSERT INTO project_members (id, project_id, role, user_id, start_date, end_date, order_index)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				memberID, p.ID, string(role), m.UserID,
				nullableTimeToString(m.StartDate, dateLayout),
				nullableTimeToString(m.EndDate, dateLayout),
				i,
			)
			if err != nil {
				return fmt.Errorf("inserting roster member: %w", err)
			}
			for j, slot := range m.TimeSlots {
				_, err := r.conn.ExecContext(ctx,
					`INSERT INTO member_slots (id, member_id, start_date, end_date, description, order_index)
					VALUES (?, ?, ?, ?, ?, ?)`,
					uuid.New().String(), memberID,
					nullableTimeToString(slot.StartDate, dateLayout),
					nullableTimeToString(slot.EndDate, dateLayout),
					slot.Description,
					j,
				)
				if err != nil {
					return fmt.Errorf("inserting member slot: %w", err)
				}
			}
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadRosters(ctx context.Context, p *domain.Project) error {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, role, user_id, start_date, end_date FROM project_members
		WHERE project_id = ? ORDER BY order_index`, p.ID)
	if err != nil {
		return fmt.Errorf("loading rosters: %w", err)
	}
	defer rows.Close()

	type memberRow struct {
		id     string
		role   domain.Role
		member domain.TeamMember
	}
	var members []memberRow
	for rows.Next() {
		var mr memberRow
		var roleStr string
		var startStr, endStr sql.NullString
		if err := rows.Scan(&mr.id, &roleStr, &mr.member.UserID, &startStr, &endStr); err != nil {
			return fmt.Errorf("scanning roster member: %w", err)
		}
		mr.role = domain.Role(roleStr)
		mr.member.StartDate = parseNullableTime(startStr, dateLayout)
		mr.member.EndDate = parseNullableTime(endStr, dateLayout)
		members = append(members, mr)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating roster members: %w", err)
	}

	for i := range members {
		slots, err := r.loadSlots(ctx, members[i].id)
		if err != nil {
			return err
		}
		members[i].member.TimeSlots = slots
	}

	for _, role := range domain.AllRoles {
		p.SetRoster(role, nil)
	}
	for _, mr := range members {
		p.SetRoster(mr.role, append(p.Roster(mr.role), mr.member))
	}
	return nil
}

func (r *SQLiteProjectRepo) loadSlots(ctx context.Context, memberID string) ([]domain.TimeSlot, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT start_date, end_date, description FROM member_slots
		WHERE member_id = ? ORDER BY order_index`, memberID)
	if err != nil {
		return nil, fmt.Errorf("loading member slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.TimeSlot
	for rows.Next() {
		var startStr, endStr sql.NullString
		var slot domain.TimeSlot
		if err := rows.Scan(&startStr, &endStr, &slot.Description); err != nil {
			return nil, fmt.Errorf("scanning member slot: %w", err)
		}
		slot.StartDate = parseNullableTime(startStr, dateLayout)
		slot.EndDate = parseNullableTime(endStr, dateLayout)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member slots: %w", err)
	}
	return slots, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var priorityStr, statusStr, krStr, followersStr string
	var createdAtStr, updatedAtStr string
	var proposedStr, launchStr sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &priorityStr, &statusStr, &p.BusinessProblem, &krStr,
		&p.WeeklyUpdate, &p.LastWeekUpdate, &proposedStr, &launchStr,
		&followersStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Priority = domain.Priority(priorityStr)
	p.Status = domain.ProjectStatus(statusStr)
	p.KeyResultIDs = decodeStrings(krStr)
	p.Followers = decodeStrings(followersStr)
	p.ProposedDate = parseNullableTime(proposedStr, dateLayout)
	p.LaunchDate = parseNullableTime(launchStr, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
