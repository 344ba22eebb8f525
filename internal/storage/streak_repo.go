package storage

import (
	"context"
	"fmt"
)

type StreakRepo struct {
	db DBTX
}

func NewStreakRepo(db DBTX) *StreakRepo {
	return &StreakRepo{db: db}
}

func (r *StreakRepo) Mark(ctx context.Context, day string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO streak_days (day) VALUES (?) ON CONFLICT(day) DO NOTHING`, day); err != nil {
		return fmt.Errorf("streak mark: %w", err)
	}
	return nil
}

func (r *StreakRepo) Unmark(ctx context.Context, day string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM streak_days WHERE day = ?`, day); err != nil {
		return fmt.Errorf("streak unmark: %w", err)
	}
	return nil
}

func (r *StreakRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM streak_days`); err != nil {
		return fmt.Errorf("streak delete all: %w", err)
	}
	return nil
}

// ListDays returns every complete day in ascending order.
func (r *StreakRepo) ListDays(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day FROM streak_days ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("streak list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("streak scan: %w", err)
		}
		out = append(out, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("streak rows: %w", err)
	}
	return out, nil
}
