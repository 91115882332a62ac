package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// SQLiteOkrRepo implements OkrRepo. A period's OKR tree is replaced
// wholesale on write, matching how the board consumes it.
type SQLiteOkrRepo struct {
	conn db.DBTX
}

func NewSQLiteOkrRepo(conn db.DBTX) *SQLiteOkrRepo {
	return &SQLiteOkrRepo{conn: conn}
}

func (r *SQLiteOkrRepo) ReplaceSet(ctx context.Context, set *domain.OkrSet) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO okr_sets (period_id, period_name) VALUES (?, ?)
		ON CONFLICT(period_id) DO UPDATE SET period_name = excluded.period_name`,
		set.PeriodID, set.PeriodName)
	if err != nil {
		return fmt.Errorf("upserting okr set: %w", err)
	}
	if _, err := r.conn.ExecContext(ctx,
		`DELETE FROM okrs WHERE period_id = ?`, set.PeriodID); err != nil {
		return fmt.Errorf("clearing okrs: %w", err)
	}

	for i, okr := range set.OKRs {
		if _, err := r.conn.ExecContext(ctx,
			`INSERT INTO okrs (id, period_id, objective, order_index) VALUES (?, ?, ?, ?)`,
			okr.ID, set.PeriodID, okr.Objective, i); err != nil {
			return fmt.Errorf("inserting okr: %w", err)
		}
		for j, kr := range okr.KeyResults {
			if _, err := r.conn.ExecContext(ctx,
				`INSERT INTO key_results (id, okr_id, description, order_index) VALUES (?, ?, ?, ?)`,
				kr.ID, okr.ID, kr.Description, j); err != nil {
				return fmt.Errorf("inserting key result: %w", err)
			}
		}
	}
	return nil
}

func (r *SQLiteOkrRepo) GetSet(ctx context.Context, periodID string) (*domain.OkrSet, error) {
	var set domain.OkrSet
	err := r.conn.QueryRowContext(ctx,
		`SELECT period_id, period_name FROM okr_sets WHERE period_id = ?`, periodID).
		Scan(&set.PeriodID, &set.PeriodName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("okr set not found")
		}
		return nil, fmt.Errorf("scanning okr set: %w", err)
	}
	if err := r.loadSet(ctx, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *SQLiteOkrRepo) ListSets(ctx context.Context) ([]*domain.OkrSet, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT period_id, period_name FROM okr_sets ORDER BY period_id`)
	if err != nil {
		return nil, fmt.Errorf("listing okr sets: %w", err)
	}
	defer rows.Close()

	var sets []*domain.OkrSet
	for rows.Next() {
		var set domain.OkrSet
		if err := rows.Scan(&set.PeriodID, &set.PeriodName); err != nil {
			return nil, fmt.Errorf("scanning okr set row: %w", err)
		}
		sets = append(sets, &set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating okr sets: %w", err)
	}
	for _, set := range sets {
		if err := r.loadSet(ctx, set); err != nil {
			return nil, err
		}
	}
	return sets, nil
}

func (r *SQLiteOkrRepo) loadSet(ctx context.Context, set *domain.OkrSet) error {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, objective FROM okrs WHERE period_id = ? ORDER BY order_index`, set.PeriodID)
	if err != nil {
		return fmt.Errorf("loading okrs: %w", err)
	}
	defer rows.Close()

	set.OKRs = nil
	for rows.Next() {
		var okr domain.OKR
		if err := rows.Scan(&okr.ID, &okr.Objective); err != nil {
			return fmt.Errorf("scanning okr: %w", err)
		}
		set.OKRs = append(set.OKRs, okr)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating okrs: %w", err)
	}

	for i := range set.OKRs {
		krRows, err := r.conn.QueryContext(ctx,
			`SELECT id, description FROM key_results WHERE okr_id = ? ORDER BY order_index`,
			set.OKRs[i].ID)
		if err != nil {
			return fmt.Errorf("loading key results: %w", err)
		}
		for krRows.Next() {
			var kr domain.KeyResult
			if err := krRows.Scan(&kr.ID, &kr.Description); err != nil {
				krRows.Close()
				return fmt.Errorf("scanning key result: %w", err)
			}
			set.OKRs[i].KeyResults = append(set.OKRs[i].KeyResults, kr)
		}
		if err := krRows.Err(); err != nil {
			krRows.Close()
			return fmt.Errorf("iterating key results: %w", err)
		}
		krRows.Close()
	}
	return nil
}
