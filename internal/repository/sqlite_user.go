package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// SQLiteUserRepo implements UserRepo.
type SQLiteUserRepo struct {
	conn db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{conn: conn}
}

func (r *SQLiteUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	now := nowUTC()
	query := `INSERT INTO users (id, name, email, dept_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email,
			dept_name = excluded.dept_name, updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.DeptName, now, now)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, name, email, dept_name FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.DeptName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, email, dept_name FROM users ORDER BY dept_name, name`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.DeptName); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
