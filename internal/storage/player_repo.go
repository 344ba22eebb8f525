package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainPlayerKey = "main_user"

type PlayerRepo struct {
	db DBTX
}

func NewPlayerRepo(db DBTX) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, level, experience, stat_str, stat_agi, stat_int, stat_vit, stat_will
		FROM player WHERE key = ?
	`, key)

	var p Player
	if err := row.Scan(&p.Key, &p.Level, &p.Experience, &p.Str, &p.Agi, &p.Int, &p.Vit, &p.Will); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) GetOrCreateMain(ctx context.Context) (*Player, error) {
	p, err := r.Get(ctx, MainPlayerKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO player (key) VALUES (?)`, MainPlayerKey); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	return r.Get(ctx, MainPlayerKey)
}

// Update writes the player row, creating it if missing.
func (r *PlayerRepo) Update(ctx context.Context, p *Player) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player (key, level, experience, stat_str, stat_agi, stat_int, stat_vit, stat_will)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			level = excluded.level,
			experience = excluded.experience,
			stat_str = excluded.stat_str,
			stat_agi = excluded.stat_agi,
			stat_int = excluded.stat_int,
			stat_vit = excluded.stat_vit,
			stat_will = excluded.stat_will
	`, p.Key, p.Level, p.Experience, p.Str, p.Agi, p.Int, p.Vit, p.Will)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	return nil
}
