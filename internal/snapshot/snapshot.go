// Package snapshot exports and imports the full engine state as a single
// CBOR document, and migrates the browser app's localStorage dump.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

type Quest struct {
	Name         string `cbor:"name"`
	Stat         string `cbor:"stat"`
	Importance   string `cbor:"importance"`
	Cadence      string `cbor:"cadence"`
	TargetDay    string `cbor:"target_day,omitempty"`
	RepeatMode   string `cbor:"repeat_mode"`
	Completed    bool   `cbor:"completed"`
	CreditedStat string `cbor:"credited_stat,omitempty"`
	CreatedDay   string `cbor:"created_day"`
}

type Player struct {
	Level      int `cbor:"level"`
	Experience int `cbor:"experience"`
	Str        int `cbor:"str"`
	Agi        int `cbor:"agi"`
	Int        int `cbor:"int"`
	Vit        int `cbor:"vit"`
	Will       int `cbor:"will"`
}

// Document is one exported state.
type Document struct {
	ID            string              `cbor:"id"`
	SchemaVersion int                 `cbor:"schema_version"`
	CreatedAt     time.Time           `cbor:"created_at"`
	Player        Player              `cbor:"player"`
	Quests        []Quest             `cbor:"quests"`
	Interference  map[string][]string `cbor:"interference"`
	StreakDays    []string            `cbor:"streak_days"`
	State         map[string]string   `cbor:"state"`
}

// Capture reads the whole database into a new Document.
func Capture(ctx context.Context, db *sql.DB, now time.Time) (*Document, error) {
	doc := &Document{
		ID:            uuid.NewString(),
		SchemaVersion: storage.SchemaVersion(),
		CreatedAt:     now.UTC(),
		Interference:  map[string][]string{},
		State:         map[string]string{},
	}

	err := storage.WithTx(ctx, db, func(tx *sql.Tx) error {
		p, err := storage.NewPlayerRepo(tx).GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		doc.Player = Player{Level: p.Level, Experience: p.Experience, Str: p.Str, Agi: p.Agi, Int: p.Int, Vit: p.Vit, Will: p.Will}

		quests, err := storage.NewQuestRepo(tx).ListAll(ctx)
		if err != nil {
			return err
		}
		for _, q := range quests {
			sq := Quest{
				Name:         q.Name,
				Stat:         q.Stat,
				Importance:   q.Importance,
				Cadence:      q.Cadence,
				RepeatMode:   q.RepeatMode,
				Completed:    q.Completed,
				CreditedStat: q.CreditedStat,
				CreatedDay:   q.CreatedDay,
			}
			if q.TargetDay != nil {
				sq.TargetDay = *q.TargetDay
			}
			doc.Quests = append(doc.Quests, sq)
		}

		entries, _, err := storage.NewInterferenceRepo(tx).ListSince(ctx, "")
		if err != nil {
			return err
		}
		for _, e := range entries {
			doc.Interference[e.Day] = e.Tags
		}

		if doc.StreakDays, err = storage.NewStreakRepo(tx).ListDays(ctx); err != nil {
			return err
		}

		state := storage.NewStateRepo(tx)
		for _, key := range stateKeys {
			v, ok, err := state.Get(ctx, key)
			if err != nil {
				return err
			}
			if ok {
				doc.State[key] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

var stateKeys = []string{
	storage.KeySuppressionDay,
	storage.KeySuppressionAnchor,
	storage.KeyLastProcessedDay,
	storage.KeyAwardedXP,
	storage.KeyAwardedDay,
	storage.KeyLastPenaltyDay,
	storage.KeyManualCloseDay,
	storage.KeyManualPenalties,
}

// Restore replaces the database contents with doc in one transaction.
func Restore(ctx context.Context, db *sql.DB, doc *Document) error {
	if doc.SchemaVersion > storage.SchemaVersion() {
		return fmt.Errorf("snapshot schema version %d is newer than supported %d", doc.SchemaVersion, storage.SchemaVersion())
	}

	return storage.WithTx(ctx, db, func(tx *sql.Tx) error {
		quests := storage.NewQuestRepo(tx)
		interference := storage.NewInterferenceRepo(tx)
		streaks := storage.NewStreakRepo(tx)
		state := storage.NewStateRepo(tx)

		if err := quests.DeleteAll(ctx); err != nil {
			return err
		}
		if err := interference.DeleteAll(ctx); err != nil {
			return err
		}
		if err := streaks.DeleteAll(ctx); err != nil {
			return err
		}
		if err := state.DeleteAll(ctx); err != nil {
			return err
		}

		p := doc.Player
		if err := storage.NewPlayerRepo(tx).Update(ctx, &storage.Player{
			Key: storage.MainPlayerKey, Level: p.Level, Experience: p.Experience,
			Str: p.Str, Agi: p.Agi, Int: p.Int, Vit: p.Vit, Will: p.Will,
		}); err != nil {
			return err
		}

		for _, q := range doc.Quests {
			row := storage.Quest{
				Name:         q.Name,
				Stat:         q.Stat,
				Importance:   q.Importance,
				Cadence:      q.Cadence,
				RepeatMode:   q.RepeatMode,
				Completed:    q.Completed,
				CreditedStat: q.CreditedStat,
				CreatedDay:   q.CreatedDay,
			}
			if q.TargetDay != "" {
				td := q.TargetDay
				row.TargetDay = &td
			}
			if _, err := quests.Insert(ctx, row); err != nil {
				return err
			}
		}
		for day, tags := range doc.Interference {
			if err := interference.Put(ctx, day, tags); err != nil {
				return err
			}
		}
		for _, day := range doc.StreakDays {
			if err := streaks.Mark(ctx, day); err != nil {
				return err
			}
		}
		for key, v := range doc.State {
			if err := state.Set(ctx, key, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Export captures the database and writes it to path.
func Export(ctx context.Context, db *sql.DB, path string, now time.Time) (*Document, error) {
	doc, err := Capture(ctx, db, now)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := WriteFile(path, data); err != nil {
		return nil, err
	}
	return doc, nil
}

// Import reads a CBOR snapshot from path and restores it.
func Import(ctx context.Context, db *sql.DB, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := Restore(ctx, db, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteFile writes data to a temporary file in the same directory, fsyncs
// it and renames it into place. Readers never see a partial write.
func WriteFile(path string, data []byte) error {
	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating temporary snapshot file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary snapshot file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary snapshot file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary snapshot file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming snapshot file into place: %w", err)
	}

	if dir, err := os.Open(filepath.Dir(path)); err == nil {
		dir.Sync()
		dir.Close()
	}
	return nil
}
