package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Keys of the engine_state table.
const (
	KeySuppressionDay   = "suppression_day"
	KeyLastProcessedDay = "last_processed_day"
	KeyAwardedXP        = "awarded_xp"
	KeyAwardedDay       = "awarded_day"
	KeyLastPenaltyDay   = "last_penalty_day"

	// KeySuppressionAnchor is the last day suppression engaged. Unlike
	// KeySuppressionDay it is never cleared; escalation only counts
	// interference after it.
	KeySuppressionAnchor = "suppression_anchor"

	// KeyManualCloseDay is the day a manual trigger already penalised, and
	// KeyManualPenalties the comma-separated quest ids it penalised. The
	// midnight rollover of that day skips those quests.
	KeyManualCloseDay  = "manual_close_day"
	KeyManualPenalties = "manual_penalties"
)

// StateRepo is a small key/value table for engine bookkeeping.
type StateRepo struct {
	db DBTX
}

func NewStateRepo(db DBTX) *StateRepo {
	return &StateRepo{db: db}
}

// Get returns the value for key and whether it was present.
func (r *StateRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM engine_state WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("state get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *StateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO engine_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("state set %s: %w", key, err)
	}
	return nil
}

func (r *StateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM engine_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("state delete %s: %w", key, err)
	}
	return nil
}

func (r *StateRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM engine_state`); err != nil {
		return fmt.Errorf("state delete all: %w", err)
	}
	return nil
}
