package engine

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/config"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

// Service owns all engine state. Every operation runs in one SQLite
// transaction under mu, so callers never observe half-applied changes.
type Service struct {
	mu     sync.Mutex
	db     *sql.DB
	clock  clock.Clock
	logger *slog.Logger
	rules  config.Rules
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRules(r config.Rules) Option {
	return func(s *Service) { s.rules = r }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:     db,
		clock:  clock.Real(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		rules:  config.DefaultRules(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Rules() config.Rules { return s.rules }

func (s *Service) Clock() clock.Clock { return s.clock }

// Today returns the current calendar day of the service clock.
func (s *Service) Today() string { return clock.Today(s.clock) }

// repos binds every repository to one transaction.
type repos struct {
	players      *storage.PlayerRepo
	quests       *storage.QuestRepo
	interference *storage.InterferenceRepo
	streaks      *storage.StreakRepo
	state        *storage.StateRepo
}

func newRepos(db storage.DBTX) repos {
	return repos{
		players:      storage.NewPlayerRepo(db),
		quests:       storage.NewQuestRepo(db),
		interference: storage.NewInterferenceRepo(db),
		streaks:      storage.NewStreakRepo(db),
		state:        storage.NewStateRepo(db),
	}
}

// withRepos runs fn in one transaction with every repo bound to it.
// Callers hold mu.
func (s *Service) withRepos(ctx context.Context, fn func(r repos) error) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(newRepos(tx))
	})
}

// view runs fn in a transaction without touching daily state.
func (s *Service) view(ctx context.Context, fn func(r repos, today string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.Today()
	return s.withRepos(ctx, func(r repos) error {
		return fn(r, today)
	})
}

// update runs fn in a transaction after any pending rollover, so a new
// day is always closed before today's scoring is read.
func (s *Service) update(ctx context.Context, fn func(r repos, today string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.Today()
	return s.withRepos(ctx, func(r repos) error {
		if _, err := s.rollover(ctx, r, today, false); err != nil {
			return err
		}
		return fn(r, today)
	})
}

// loadPlayer returns the main player, repairing out-of-range values.
func (s *Service) loadPlayer(ctx context.Context, r repos) (*storage.Player, error) {
	p, err := r.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	if repairPlayer(p) {
		s.logger.Warn("repaired player record",
			"error", CorruptStateError{Table: "player", Err: errors.New("value out of range")},
			"level", p.Level, "experience", p.Experience)
		if err := r.players.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func repairPlayer(p *storage.Player) bool {
	repaired := false
	if p.Level < 1 {
		p.Level = DefaultLevel
		repaired = true
	}
	if p.Experience < 0 || p.Experience >= RequiredForLevel(p.Level) {
		ApplyExperience(p, 0)
		repaired = true
	}
	for _, st := range Stats {
		if f := statField(p, st); *f < 0 {
			*f = 0
			repaired = true
		}
	}
	return repaired
}

// loadQuests returns every quest with Active computed for today.
func (s *Service) loadQuests(ctx context.Context, r repos, today string) ([]Quest, error) {
	rows, err := r.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quest, 0, len(rows))
	for _, row := range rows {
		q := s.fromRow(row)
		q.Active = IsActiveOn(q, today)
		out = append(out, q)
	}
	return out, nil
}

func (s *Service) getQuest(ctx context.Context, r repos, id int64) (Quest, error) {
	row, err := r.quests.Get(ctx, id)
	if err != nil {
		return Quest{}, err
	}
	if row == nil {
		return Quest{}, NotFoundError{ID: id}
	}
	return s.fromRow(*row), nil
}

// fromRow converts a stored quest. Unknown enum values fall back to the
// defaults with a warning.
func (s *Service) fromRow(row storage.Quest) Quest {
	q := Quest{
		ID:           row.ID,
		Name:         row.Name,
		Stat:         Stat(row.Stat),
		Importance:   Importance(row.Importance),
		Cadence:      Cadence(row.Cadence),
		Repeat:       RepeatMode(row.RepeatMode),
		Completed:    row.Completed,
		CreditedStat: Stat(row.CreditedStat),
		CreatedDay:   row.CreatedDay,
	}
	if row.TargetDay != nil {
		q.TargetDay = *row.TargetDay
	}
	bad := func(field, value string) {
		s.logger.Warn("corrupt quest field reset to default",
			"quest", row.ID, "field", field, "value", value)
	}
	if !q.Stat.IsValid() {
		bad("stat", row.Stat)
		q.Stat = StatWillpower
	}
	if !q.Importance.IsValid() {
		bad("importance", row.Importance)
		q.Importance = ImportanceNormal
	}
	if !q.Cadence.IsValid() {
		bad("cadence", row.Cadence)
		q.Cadence = CadenceDaily
	}
	if !q.Repeat.IsValid() {
		bad("repeat_mode", row.RepeatMode)
		q.Repeat = RepeatNone
	}
	if q.CreditedStat != "" && !q.CreditedStat.IsValid() {
		bad("credited_stat", row.CreditedStat)
		q.CreditedStat = ""
	}
	return q
}

func toRow(q Quest) storage.Quest {
	row := storage.Quest{
		ID:           q.ID,
		Name:         q.Name,
		Stat:         string(q.Stat),
		Importance:   string(q.Importance),
		Cadence:      string(q.Cadence),
		RepeatMode:   string(q.Repeat),
		Completed:    q.Completed,
		CreditedStat: string(q.CreditedStat),
		CreatedDay:   q.CreatedDay,
	}
	if q.TargetDay != "" {
		td := q.TargetDay
		row.TargetDay = &td
	}
	return row
}

func (s *Service) isSuppressed(ctx context.Context, r repos, today string) (bool, error) {
	day, ok, err := r.state.Get(ctx, storage.KeySuppressionDay)
	if err != nil {
		return false, err
	}
	return ok && day == today, nil
}

// awardedToday reads the envelope counter. A stamp from another day reads as 0.
func (s *Service) awardedToday(ctx context.Context, r repos, today string) (int, error) {
	day, ok, err := r.state.Get(ctx, storage.KeyAwardedDay)
	if err != nil {
		return 0, err
	}
	if !ok || day != today {
		return 0, nil
	}
	raw, ok, err := r.state.Get(ctx, storage.KeyAwardedXP)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Warn("awarded counter unreadable, treating as 0",
			"error", CorruptStateError{Table: "engine_state", Err: err})
		return 0, nil
	}
	return n, nil
}

func (s *Service) setAwardedToday(ctx context.Context, r repos, today string, n int) error {
	if err := r.state.Set(ctx, storage.KeyAwardedXP, strconv.Itoa(n)); err != nil {
		return err
	}
	return r.state.Set(ctx, storage.KeyAwardedDay, today)
}

// settle re-scores the envelope and refreshes today's streak mark. It runs
// after every quest or interference change.
func (s *Service) settle(ctx context.Context, r repos, today string) (LevelChange, error) {
	quests, err := s.loadQuests(ctx, r, today)
	if err != nil {
		return LevelSame, err
	}
	active := ActiveOn(quests, today)

	change := LevelSame
	suppressed, err := s.isSuppressed(ctx, r, today)
	if err != nil {
		return LevelSame, err
	}
	if !suppressed {
		awarded, err := s.awardedToday(ctx, r, today)
		if err != nil {
			return LevelSame, err
		}
		target := TargetExperience(s.rules.Envelope, active)
		if delta := target - awarded; delta != 0 {
			p, err := s.loadPlayer(ctx, r)
			if err != nil {
				return LevelSame, err
			}
			change = ApplyExperience(p, delta)
			if err := r.players.Update(ctx, p); err != nil {
				return LevelSame, err
			}
			s.logger.Debug("envelope rescored", "day", today, "target", target, "delta", delta)
		}
		if err := s.setAwardedToday(ctx, r, today, target); err != nil {
			return LevelSame, err
		}
	}

	if err := s.markStreak(ctx, r, today, active); err != nil {
		return LevelSame, err
	}
	return change, nil
}

// markStreak recomputes today's entry in the complete-day set.
func (s *Service) markStreak(ctx context.Context, r repos, today string, active []Quest) error {
	tags, err := s.interferenceOn(ctx, r, today)
	if err != nil {
		return err
	}
	if DayComplete(active, len(tags) > 0) {
		return r.streaks.Mark(ctx, today)
	}
	return r.streaks.Unmark(ctx, today)
}

// interferenceOn returns the tags for day. A corrupt entry is dropped.
func (s *Service) interferenceOn(ctx context.Context, r repos, day string) ([]string, error) {
	tags, err := r.interference.Get(ctx, day)
	var ce *storage.CorruptError
	if errors.As(err, &ce) {
		s.logger.Warn("dropping corrupt interference entry", "day", day, "error", err)
		return nil, r.interference.Delete(ctx, day)
	}
	return tags, err
}
