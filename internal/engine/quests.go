package engine

import (
	"context"
	"strings"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
)

type QuestInput struct {
	Name       string
	Stat       Stat
	Importance Importance
	Cadence    Cadence
	TargetDay  string
	Repeat     RepeatMode
}

// QuestPatch holds the fields to change; nil means keep.
type QuestPatch struct {
	Name       *string
	Stat       *Stat
	Importance *Importance
	Cadence    *Cadence
	TargetDay  *string
	Repeat     *RepeatMode
}

// QuestResult reports the effect of a quest mutation.
type QuestResult struct {
	Quest      Quest
	StatDelta  int
	Level      LevelChange
	Suppressed bool
	AwardedXP  int
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ValidationError{Field: "name", Reason: "name is required"}
	}
	return n, nil
}

// normalizeQuest fills defaults and validates q in place.
func normalizeQuest(q *Quest) error {
	name, err := normalizeName(q.Name)
	if err != nil {
		return err
	}
	q.Name = name
	if !q.Stat.IsValid() {
		return ValidationError{Field: "stat", Reason: "unknown stat " + quote(string(q.Stat))}
	}
	if q.Importance == "" {
		q.Importance = ImportanceNormal
	}
	if !q.Importance.IsValid() {
		return ValidationError{Field: "importance", Reason: "unknown importance " + quote(string(q.Importance))}
	}
	if q.Cadence == "" {
		q.Cadence = CadenceDaily
	}
	if !q.Cadence.IsValid() {
		return ValidationError{Field: "cadence", Reason: "unknown cadence " + quote(string(q.Cadence))}
	}
	if q.Repeat == "" {
		q.Repeat = RepeatNone
	}
	if !q.Repeat.IsValid() {
		return ValidationError{Field: "repeat", Reason: "unknown repeat mode " + quote(string(q.Repeat))}
	}
	if q.Cadence != CadenceSpecific {
		q.TargetDay = ""
		q.Repeat = RepeatNone
		return nil
	}
	q.TargetDay = strings.TrimSpace(q.TargetDay)
	if q.TargetDay == "" {
		return ValidationError{Field: "target_day", Reason: "specific-date quest needs a target day"}
	}
	if _, err := clock.ParseDay(q.TargetDay); err != nil {
		return ValidationError{Field: "target_day", Reason: err.Error()}
	}
	return nil
}

func (s *Service) AddQuest(ctx context.Context, in QuestInput) (*QuestResult, error) {
	var res *QuestResult
	err := s.update(ctx, func(r repos, today string) error {
		q := Quest{
			Name:       in.Name,
			Stat:       in.Stat,
			Importance: in.Importance,
			Cadence:    in.Cadence,
			TargetDay:  in.TargetDay,
			Repeat:     in.Repeat,
			CreatedDay: today,
		}
		if err := normalizeQuest(&q); err != nil {
			return err
		}

		n, err := r.quests.Count(ctx)
		if err != nil {
			return err
		}
		if n >= s.rules.MaxQuests {
			return CapacityError{Limit: s.rules.MaxQuests}
		}

		id, err := r.quests.Insert(ctx, toRow(q))
		if err != nil {
			return err
		}
		q.ID = id
		q.Active = IsActiveOn(q, today)

		change, err := s.settle(ctx, r, today)
		if err != nil {
			return err
		}
		res = &QuestResult{Quest: q, Level: change}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("quest added", "id", res.Quest.ID, "name", res.Quest.Name, "cadence", res.Quest.Cadence)
	return res, nil
}

// EditQuest updates the given fields. Completion and stat credit are kept.
func (s *Service) EditQuest(ctx context.Context, id int64, patch QuestPatch) (*QuestResult, error) {
	var res *QuestResult
	err := s.update(ctx, func(r repos, today string) error {
		q, err := s.getQuest(ctx, r, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			q.Name = *patch.Name
		}
		if patch.Stat != nil {
			q.Stat = *patch.Stat
		}
		if patch.Importance != nil {
			q.Importance = *patch.Importance
		}
		if patch.Cadence != nil {
			q.Cadence = *patch.Cadence
		}
		if patch.TargetDay != nil {
			q.TargetDay = *patch.TargetDay
		}
		if patch.Repeat != nil {
			q.Repeat = *patch.Repeat
		}
		if err := normalizeQuest(&q); err != nil {
			return err
		}
		if err := r.quests.Update(ctx, toRow(q)); err != nil {
			return err
		}
		q.Active = IsActiveOn(q, today)

		change, err := s.settle(ctx, r, today)
		if err != nil {
			return err
		}
		res = &QuestResult{Quest: q, Level: change}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteQuest removes a quest, reversing its stat credit if it holds one.
func (s *Service) DeleteQuest(ctx context.Context, id int64) (*QuestResult, error) {
	var res *QuestResult
	err := s.update(ctx, func(r repos, today string) error {
		q, err := s.getQuest(ctx, r, id)
		if err != nil {
			return err
		}
		res = &QuestResult{Quest: q}
		if q.CreditedStat != "" {
			p, err := s.loadPlayer(ctx, r)
			if err != nil {
				return err
			}
			AdjustStat(p, q.CreditedStat, -1)
			if err := r.players.Update(ctx, p); err != nil {
				return err
			}
			res.StatDelta = -1
		}
		if err := r.quests.Delete(ctx, id); err != nil {
			return err
		}
		res.Level, err = s.settle(ctx, r, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("quest deleted", "id", id, "stat_delta", res.StatDelta)
	return res, nil
}

// ToggleQuest flips today's completion of an active quest.
func (s *Service) ToggleQuest(ctx context.Context, id int64) (*QuestResult, error) {
	return s.setCompletion(ctx, id, nil)
}

func (s *Service) CompleteQuest(ctx context.Context, id int64) (*QuestResult, error) {
	done := true
	return s.setCompletion(ctx, id, &done)
}

func (s *Service) RestoreQuest(ctx context.Context, id int64) (*QuestResult, error) {
	done := false
	return s.setCompletion(ctx, id, &done)
}

// setCompletion sets completion to *want, or flips it when want is nil.
func (s *Service) setCompletion(ctx context.Context, id int64, want *bool) (*QuestResult, error) {
	var res *QuestResult
	err := s.update(ctx, func(r repos, today string) error {
		q, err := s.getQuest(ctx, r, id)
		if err != nil {
			return err
		}
		if !IsActiveOn(q, today) {
			return ValidationError{Field: "quest", Reason: "quest is not active today"}
		}
		target := !q.Completed
		if want != nil {
			target = *want
			if target == q.Completed {
				if target {
					return ValidationError{Field: "quest", Reason: "quest is already completed"}
				}
				return ValidationError{Field: "quest", Reason: "quest is not completed"}
			}
		}

		suppressed, err := s.isSuppressed(ctx, r, today)
		if err != nil {
			return err
		}
		res = &QuestResult{Suppressed: suppressed}

		p, err := s.loadPlayer(ctx, r)
		if err != nil {
			return err
		}
		q.Completed = target
		if target {
			if !suppressed {
				AdjustStat(p, q.Stat, 1)
				q.CreditedStat = q.Stat
				res.StatDelta = 1
			}
		} else if q.CreditedStat != "" {
			AdjustStat(p, q.CreditedStat, -1)
			q.CreditedStat = ""
			res.StatDelta = -1
		}
		if err := r.players.Update(ctx, p); err != nil {
			return err
		}
		if err := r.quests.Update(ctx, toRow(q)); err != nil {
			return err
		}

		before, err := s.awardedToday(ctx, r, today)
		if err != nil {
			return err
		}
		if res.Level, err = s.settle(ctx, r, today); err != nil {
			return err
		}
		after, err := s.awardedToday(ctx, r, today)
		if err != nil {
			return err
		}
		res.AwardedXP = after - before
		q.Active = true
		res.Quest = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("quest completion changed", "id", id, "completed", res.Quest.Completed,
		"stat_delta", res.StatDelta, "xp_delta", res.AwardedXP)
	return res, nil
}

// ListQuests returns every quest with Active set for today.
func (s *Service) ListQuests(ctx context.Context) ([]Quest, error) {
	var out []Quest
	err := s.view(ctx, func(r repos, today string) error {
		var err error
		out, err = s.loadQuests(ctx, r, today)
		return err
	})
	return out, err
}
