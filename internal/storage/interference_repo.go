package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type InterferenceRepo struct {
	db DBTX
}

func NewInterferenceRepo(db DBTX) *InterferenceRepo {
	return &InterferenceRepo{db: db}
}

// Get returns the tags logged for day, nil if none. A row whose tags do
// not decode yields a *CorruptError.
func (r *InterferenceRepo) Get(ctx context.Context, day string) ([]string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT tags FROM interference_log WHERE day = ?`, day)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("interference get: %w", err)
	}
	return decodeTags(day, raw)
}

// Put replaces the tags for day. An empty set removes the row, since a
// day with no tags is the same as an absent day.
func (r *InterferenceRepo) Put(ctx context.Context, day string, tags []string) error {
	if len(tags) == 0 {
		return r.Delete(ctx, day)
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interference_log (day, tags) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET tags = excluded.tags
	`, day, string(data))
	if err != nil {
		return fmt.Errorf("interference put: %w", err)
	}
	return nil
}

func (r *InterferenceRepo) Delete(ctx context.Context, day string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM interference_log WHERE day = ?`, day); err != nil {
		return fmt.Errorf("interference delete: %w", err)
	}
	return nil
}

func (r *InterferenceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM interference_log`); err != nil {
		return fmt.Errorf("interference delete all: %w", err)
	}
	return nil
}

// ListSince returns entries with day >= since in ascending order. Corrupt
// rows are returned in the second slice so the caller can repair them.
func (r *InterferenceRepo) ListSince(ctx context.Context, since string) ([]InterferenceEntry, []*CorruptError, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, tags FROM interference_log WHERE day >= ? ORDER BY day ASC`, since)
	if err != nil {
		return nil, nil, fmt.Errorf("interference list: %w", err)
	}
	defer rows.Close()

	var (
		out     []InterferenceEntry
		corrupt []*CorruptError
	)
	for rows.Next() {
		var day, raw string
		if err := rows.Scan(&day, &raw); err != nil {
			return nil, nil, fmt.Errorf("interference scan: %w", err)
		}
		tags, err := decodeTags(day, raw)
		if err != nil {
			if ce, ok := err.(*CorruptError); ok {
				corrupt = append(corrupt, ce)
				continue
			}
			return nil, nil, err
		}
		if len(tags) == 0 {
			continue
		}
		out = append(out, InterferenceEntry{Day: day, Tags: tags})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("interference rows: %w", err)
	}
	return out, corrupt, nil
}

func decodeTags(day, raw string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, &CorruptError{Table: "interference_log", Key: day, Err: err}
	}
	return tags, nil
}
