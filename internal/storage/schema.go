package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run. Append only.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			stat_str INTEGER NOT NULL DEFAULT 10,
			stat_agi INTEGER NOT NULL DEFAULT 10,
			stat_int INTEGER NOT NULL DEFAULT 10,
			stat_vit INTEGER NOT NULL DEFAULT 10,
			stat_will INTEGER NOT NULL DEFAULT 10
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			stat TEXT NOT NULL,
			importance TEXT NOT NULL DEFAULT 'normal',
			cadence TEXT NOT NULL DEFAULT 'daily',
			target_day TEXT,
			repeat_mode TEXT NOT NULL DEFAULT 'none',
			completed INTEGER NOT NULL DEFAULT 0,
			credited_stat TEXT NOT NULL DEFAULT '',
			created_day TEXT NOT NULL
		);`,
		// Tags are a JSON array of strings.
		`CREATE TABLE IF NOT EXISTS interference_log (
			day TEXT PRIMARY KEY,
			tags TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS streak_days (
			day TEXT PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS engine_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	},
}

// SchemaVersion is the user_version of a fully migrated database.
func SchemaVersion() int {
	return len(migrations)
}

// Migrate brings the schema up to SchemaVersion.
func Migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read user_version: %w", err)
	}
	if current > len(migrations) {
		return fmt.Errorf("migrate: database schema v%d is newer than this binary (v%d)", current, len(migrations))
	}

	for v := current; v < len(migrations); v++ {
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			for _, stmt := range migrations[v] {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			// PRAGMA does not take bind parameters.
			_, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, v+1))
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate v%d: %w", v+1, err)
		}
	}
	return nil
}
