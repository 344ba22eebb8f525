package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

// Browser localStorage keys.
const (
	legacyPlayerKey       = "solo_player"
	legacyQuestsKey       = "dailyQuests"
	legacyInterferenceKey = "solo_interference_log"
	legacyStreakKey       = "solo_streak_days"
	legacySuppressionKey  = "solo_suppression_date"
	legacyLastDayKey      = "solo_last_day"
	legacyPenaltyKey      = "solo_last_penalty_date"
)

type legacyPlayer struct {
	Level int            `json:"level"`
	XP    int            `json:"xp"`
	Stats map[string]int `json:"stats"`
}

type legacyQuest struct {
	Name        string `json:"name"`
	Stat        string `json:"stat"`
	Completed   bool   `json:"completed"`
	Importance  string `json:"importance"`
	Cadence     string `json:"cadence"`
	TargetDate  string `json:"targetDate"`
	RepeatMode  string `json:"repeatMode"`
	CreatedDate string `json:"createdDate"`
}

// DecodeLegacy converts a JSON dump of the browser app's localStorage
// into a Document. Values may be stored as JSON strings (as localStorage
// holds them) or inline. Malformed keys fall back to defaults and are
// logged; only an unreadable top-level object is an error.
func DecodeLegacy(r io.Reader, now time.Time, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode legacy dump: %w", err)
	}

	today := clock.DayOf(now)
	doc := &Document{
		ID:            uuid.NewString(),
		SchemaVersion: storage.SchemaVersion(),
		CreatedAt:     now.UTC(),
		Player: Player{
			Level: engine.DefaultLevel,
			Str:   engine.DefaultStat, Agi: engine.DefaultStat, Int: engine.DefaultStat,
			Vit: engine.DefaultStat, Will: engine.DefaultStat,
		},
		Interference: map[string][]string{},
		State:        map[string]string{},
	}
	corrupt := func(key string, err error) {
		logger.Warn("legacy value unreadable, using defaults", "key", key, "error", err)
	}

	var lp legacyPlayer
	if ok, err := legacyValue(raw, legacyPlayerKey, &lp); err != nil {
		corrupt(legacyPlayerKey, err)
	} else if ok {
		doc.Player = convertPlayer(lp)
	}

	var quests []legacyQuest
	if _, err := legacyValue(raw, legacyQuestsKey, &quests); err != nil {
		corrupt(legacyQuestsKey, err)
	}
	for i, lq := range quests {
		q, err := convertQuest(lq, today)
		if err != nil {
			logger.Warn("skipping legacy quest", "index", i, "name", lq.Name, "error", err)
			continue
		}
		doc.Quests = append(doc.Quests, q)
	}

	var entries map[string][]string
	if _, err := legacyValue(raw, legacyInterferenceKey, &entries); err != nil {
		corrupt(legacyInterferenceKey, err)
	}
	for day, tags := range entries {
		d, ok := parseLegacyDay(day)
		tags = engine.NormalizeTags(tags)
		if !ok || len(tags) == 0 {
			continue
		}
		doc.Interference[d] = engine.NormalizeTags(append(doc.Interference[d], tags...))
	}

	var streak []string
	if _, err := legacyValue(raw, legacyStreakKey, &streak); err != nil {
		corrupt(legacyStreakKey, err)
	}
	seen := map[string]bool{}
	for _, day := range streak {
		if d, ok := parseLegacyDay(day); ok && !seen[d] {
			seen[d] = true
			doc.StreakDays = append(doc.StreakDays, d)
		}
	}

	dayKeys := []struct{ legacy, key string }{
		{legacySuppressionKey, storage.KeySuppressionDay},
		{legacyLastDayKey, storage.KeyLastProcessedDay},
		{legacyPenaltyKey, storage.KeyLastPenaltyDay},
	}
	for _, k := range dayKeys {
		s, ok := legacyString(raw, k.legacy)
		if !ok {
			continue
		}
		d, ok := parseLegacyDay(s)
		if !ok {
			corrupt(k.legacy, fmt.Errorf("unrecognized date %q", s))
			continue
		}
		doc.State[k.key] = d
	}
	if d, ok := doc.State[storage.KeySuppressionDay]; ok {
		doc.State[storage.KeySuppressionAnchor] = d
	}
	return doc, nil
}

func convertPlayer(lp legacyPlayer) Player {
	p := &storage.Player{
		Level:      lp.Level,
		Experience: lp.XP,
		Str:        statOr(lp.Stats, "str"),
		Agi:        statOr(lp.Stats, "agi"),
		Int:        statOr(lp.Stats, "int"),
		Vit:        statOr(lp.Stats, "vit"),
		Will:       statOr(lp.Stats, "will"),
	}
	// Renormalize whatever the browser left behind.
	engine.ApplyExperience(p, 0)
	for _, st := range engine.Stats {
		engine.AdjustStat(p, st, 0)
	}
	return Player{Level: p.Level, Experience: p.Experience, Str: p.Str, Agi: p.Agi, Int: p.Int, Vit: p.Vit, Will: p.Will}
}

func statOr(stats map[string]int, key string) int {
	if v, ok := stats[key]; ok {
		return v
	}
	return engine.DefaultStat
}

func convertQuest(lq legacyQuest, today string) (Quest, error) {
	name := strings.TrimSpace(lq.Name)
	if name == "" {
		return Quest{}, fmt.Errorf("empty name")
	}
	stat, err := engine.ParseStat(lq.Stat)
	if err != nil {
		return Quest{}, err
	}
	// Unknown optional fields fall back to their defaults.
	importance, err := engine.ParseImportance(lq.Importance)
	if err != nil {
		importance = engine.ImportanceNormal
	}
	cadence, err := engine.ParseCadence(lq.Cadence)
	if err != nil {
		cadence = engine.CadenceDaily
	}
	repeat, err := engine.ParseRepeatMode(lq.RepeatMode)
	if err != nil {
		repeat = engine.RepeatNone
	}

	q := Quest{
		Name:       name,
		Stat:       string(stat),
		Importance: string(importance),
		Cadence:    string(cadence),
		RepeatMode: string(repeat),
		Completed:  lq.Completed,
		CreatedDay: today,
	}
	if d, ok := parseLegacyDay(lq.CreatedDate); ok {
		q.CreatedDay = d
	}
	if cadence == engine.CadenceSpecific {
		d, ok := parseLegacyDay(lq.TargetDate)
		if !ok {
			return Quest{}, fmt.Errorf("specific-date quest without a valid target date")
		}
		q.TargetDay = d
	} else {
		q.RepeatMode = string(engine.RepeatNone)
	}
	if q.Completed {
		q.CreditedStat = q.Stat
	}
	return q, nil
}

// legacyValue decodes key into v. It reports whether the key was present.
func legacyValue(raw map[string]json.RawMessage, key string, v any) (bool, error) {
	msg, ok := raw[key]
	if !ok || string(msg) == "null" {
		return false, nil
	}
	var inner string
	if err := json.Unmarshal(msg, &inner); err == nil {
		msg = json.RawMessage(inner)
	}
	if err := json.Unmarshal(msg, v); err != nil {
		return true, err
	}
	return true, nil
}

func legacyString(raw map[string]json.RawMessage, key string) (string, bool) {
	msg, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// legacyDayLayouts covers ISO days, toDateString() and ISO timestamps.
var legacyDayLayouts = []string{
	clock.DayLayout,
	"Mon Jan 02 2006",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

func parseLegacyDay(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range legacyDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clock.DayLayout), true
		}
	}
	return "", false
}
