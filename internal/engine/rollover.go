package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

type Penalty struct {
	QuestID int64
	Name    string
	Stat    Stat
}

type RolloverResult struct {
	// Ran is false when the day had already been processed.
	Ran bool
	// Manual is set when a forced trigger penalised today without
	// starting a new day.
	Manual             bool
	ClosedDay          string
	Day                string
	Penalties          []Penalty
	XPLost             int
	Level              LevelChange
	SuppressionCleared bool
	SuppressionEngaged bool
}

// CheckRollover closes the previous day if today has not been processed.
// Repeated calls on the same day are no-ops.
func (s *Service) CheckRollover(ctx context.Context) (*RolloverResult, error) {
	return s.runRollover(ctx, false)
}

// ForceRollover is the manual penalty trigger. If the previous day is still
// open it behaves like CheckRollover. Otherwise it penalises today's
// incomplete quests once, leaving completion, credit and the envelope
// counter alone; a second call on the same day is a no-op.
func (s *Service) ForceRollover(ctx context.Context) (*RolloverResult, error) {
	return s.runRollover(ctx, true)
}

func (s *Service) runRollover(ctx context.Context, force bool) (*RolloverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.Today()

	var res *RolloverResult
	err := s.withRepos(ctx, func(r repos) error {
		var err error
		res, err = s.rollover(ctx, r, today, force)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) rollover(ctx context.Context, r repos, today string, force bool) (*RolloverResult, error) {
	res := &RolloverResult{Day: today}

	last, ok, err := r.state.Get(ctx, storage.KeyLastProcessedDay)
	if err != nil {
		return nil, err
	}
	if ok {
		if _, err := clock.ParseDay(last); err != nil {
			s.logger.Warn("last processed day unreadable, skipping penalty",
				"error", CorruptStateError{Table: "engine_state", Err: err})
			ok = false
		}
	}
	if ok && last == today {
		if !force {
			return res, nil
		}
		return s.closeManually(ctx, r, res, today)
	}
	res.Ran = true

	// 1. clear a suppression that belongs to another day
	sup, supOK, err := r.state.Get(ctx, storage.KeySuppressionDay)
	if err != nil {
		return nil, err
	}
	if supOK && sup != today {
		if err := r.state.Delete(ctx, storage.KeySuppressionDay); err != nil {
			return nil, err
		}
		res.SuppressionCleared = true
	}

	// 2. penalise quests left incomplete on the closed day
	if ok {
		res.ClosedDay = last
		skip, err := s.manualPenalties(ctx, r, last)
		if err != nil {
			return nil, err
		}
		if _, err := s.applyPenalties(ctx, r, res, today, skip); err != nil {
			return nil, err
		}
	}
	if err := r.state.Delete(ctx, storage.KeyManualCloseDay); err != nil {
		return nil, err
	}
	if err := r.state.Delete(ctx, storage.KeyManualPenalties); err != nil {
		return nil, err
	}

	// 3. new day, clean slate
	if err := r.quests.ResetCompletion(ctx); err != nil {
		return nil, err
	}

	// 4.
	if res.SuppressionEngaged, err = s.escalate(ctx, r, today); err != nil {
		return nil, err
	}

	// 5.
	if err := s.setAwardedToday(ctx, r, today, 0); err != nil {
		return nil, err
	}
	if err := r.state.Set(ctx, storage.KeyLastProcessedDay, today); err != nil {
		return nil, err
	}

	quests, err := s.loadQuests(ctx, r, today)
	if err != nil {
		return nil, err
	}
	if err := s.markStreak(ctx, r, today, ActiveOn(quests, today)); err != nil {
		return nil, err
	}

	s.logger.Info("day rollover",
		"closed", res.ClosedDay, "day", today,
		"penalties", len(res.Penalties), "xp_lost", res.XPLost,
		"suppression_cleared", res.SuppressionCleared,
		"suppression_engaged", res.SuppressionEngaged)
	if res.SuppressionEngaged {
		s.logger.Warn("suppression engaged", "day", today, "threshold", s.rules.SuppressionDays)
	}
	return res, nil
}

// closeManually penalises today's incomplete active quests without
// opening a new day.
func (s *Service) closeManually(ctx context.Context, r repos, res *RolloverResult, today string) (*RolloverResult, error) {
	closed, ok, err := r.state.Get(ctx, storage.KeyManualCloseDay)
	if err != nil {
		return nil, err
	}
	if ok && closed == today {
		return res, nil
	}
	res.Ran = true
	res.Manual = true
	res.ClosedDay = today

	ids, err := s.applyPenalties(ctx, r, res, today, nil)
	if err != nil {
		return nil, err
	}
	if err := r.state.Set(ctx, storage.KeyManualCloseDay, today); err != nil {
		return nil, err
	}
	if err := r.state.Set(ctx, storage.KeyManualPenalties, joinIDs(ids)); err != nil {
		return nil, err
	}
	s.logger.Info("manual penalty", "day", today, "penalties", len(res.Penalties), "xp_lost", res.XPLost)
	return res, nil
}

// manualPenalties returns the quests a manual trigger already penalised on day.
func (s *Service) manualPenalties(ctx context.Context, r repos, day string) (map[int64]bool, error) {
	closed, ok, err := r.state.Get(ctx, storage.KeyManualCloseDay)
	if err != nil || !ok || closed != day {
		return nil, err
	}
	raw, _, err := r.state.Get(ctx, storage.KeyManualPenalties)
	if err != nil {
		return nil, err
	}
	skip := map[int64]bool{}
	for _, part := range strings.Split(raw, ",") {
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			s.logger.Warn("manual penalty list unreadable",
				"error", CorruptStateError{Table: "engine_state", Err: err})
			continue
		}
		skip[id] = true
	}
	return skip, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// applyPenalties charges every quest active on res.ClosedDay that is still
// incomplete, except those in skip. It returns the penalised ids.
func (s *Service) applyPenalties(ctx context.Context, r repos, res *RolloverResult, today string, skip map[int64]bool) ([]int64, error) {
	quests, err := s.loadQuests(ctx, r, today)
	if err != nil {
		return nil, err
	}
	var missed []Quest
	for _, q := range quests {
		if !q.Completed && !skip[q.ID] && IsActiveOn(q, res.ClosedDay) {
			missed = append(missed, q)
		}
	}
	if len(missed) == 0 {
		return nil, nil
	}

	p, err := s.loadPlayer(ctx, r)
	if err != nil {
		return nil, err
	}
	levelBefore := p.Level
	for _, q := range missed {
		AdjustStat(p, q.Stat, -1)
		ApplyExperience(p, -s.rules.PenaltyXP)
		res.XPLost += s.rules.PenaltyXP
		res.Penalties = append(res.Penalties, Penalty{QuestID: q.ID, Name: q.Name, Stat: q.Stat})
	}
	switch {
	case p.Level < levelBefore:
		res.Level = LevelDown
	case p.Level > levelBefore:
		res.Level = LevelUp
	}
	if err := r.players.Update(ctx, p); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(res.Penalties))
	for _, pen := range res.Penalties {
		ids = append(ids, pen.QuestID)
		s.logger.Info("quest penalised", "quest", pen.QuestID, "stat", pen.Stat, "xp", -s.rules.PenaltyXP)
	}
	return ids, r.state.Set(ctx, storage.KeyLastPenaltyDay, today)
}
