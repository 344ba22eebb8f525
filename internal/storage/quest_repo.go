package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

const questColumns = `id, name, stat, importance, cadence, target_day, repeat_mode, completed, credited_stat, created_day`

func (r *QuestRepo) Insert(ctx context.Context, q Quest) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (name, stat, importance, cadence, target_day, repeat_mode, completed, credited_stat, created_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.Name, q.Stat, q.Importance, q.Cadence, q.TargetDay, q.RepeatMode, boolToInt(q.Completed), q.CreditedStat, q.CreatedDay)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questColumns+` FROM quests ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("quest count: %w", err)
	}
	return n, nil
}

// Update rewrites every mutable column of q.
func (r *QuestRepo) Update(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET name = ?, stat = ?, importance = ?, cadence = ?, target_day = ?, repeat_mode = ?,
			completed = ?, credited_stat = ?
		WHERE id = ?
	`, q.Name, q.Stat, q.Importance, q.Cadence, q.TargetDay, q.RepeatMode, boolToInt(q.Completed), q.CreditedStat, q.ID)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

func (r *QuestRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("quest delete: %w", err)
	}
	return nil
}

// DeleteAll empties the quest table (snapshot import).
func (r *QuestRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("quest delete all: %w", err)
	}
	return nil
}

// ResetCompletion clears completion and stat credit on every quest.
func (r *QuestRepo) ResetCompletion(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE quests SET completed = 0, credited_stat = ''`); err != nil {
		return fmt.Errorf("quest reset completion: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		q         Quest
		targetDay sql.NullString
		completed int
	)
	if err := row.Scan(
		&q.ID, &q.Name, &q.Stat, &q.Importance, &q.Cadence, &targetDay, &q.RepeatMode,
		&completed, &q.CreditedStat, &q.CreatedDay,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}
	if targetDay.Valid {
		v := targetDay.String
		q.TargetDay = &v
	}
	q.Completed = completed != 0
	return &q, nil
}
