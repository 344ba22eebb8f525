package engine

import (
	"context"
	"strings"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

// trendWindow is the number of days, today included, graded by ClassifyTrend.
const trendWindow = 7

// NormalizeTags trims tags and drops empties and duplicates, keeping order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

type InterferenceResult struct {
	Day   string
	Tags  []string
	Added []string
}

// LogInterference appends tags to today's entry.
func (s *Service) LogInterference(ctx context.Context, tags ...string) (*InterferenceResult, error) {
	clean := NormalizeTags(tags)
	if len(clean) == 0 {
		return nil, ValidationError{Field: "tags", Reason: "at least one interference tag is required"}
	}

	var res *InterferenceResult
	err := s.update(ctx, func(r repos, today string) error {
		existing, err := s.interferenceOn(ctx, r, today)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, t := range existing {
			have[t] = true
		}
		res = &InterferenceResult{Day: today, Tags: append([]string(nil), existing...)}
		for _, t := range clean {
			if have[t] {
				continue
			}
			res.Tags = append(res.Tags, t)
			res.Added = append(res.Added, t)
		}
		if err := r.interference.Put(ctx, today, res.Tags); err != nil {
			return err
		}
		_, err = s.settle(ctx, r, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("interference logged", "day", res.Day, "added", res.Added)
	return res, nil
}

func (s *Service) HasInterferenceToday(ctx context.Context) (bool, error) {
	var has bool
	err := s.view(ctx, func(r repos, today string) error {
		tags, err := s.interferenceOn(ctx, r, today)
		has = len(tags) > 0
		return err
	})
	return has, err
}

// InterferenceStreak counts consecutive interference days walking back
// from yesterday.
func (s *Service) InterferenceStreak(ctx context.Context) (int, error) {
	var n int
	err := s.view(ctx, func(r repos, today string) error {
		var err error
		n, err = s.consecutiveInterference(ctx, r, today, "", 0)
		return err
	})
	return n, err
}

// consecutiveInterference walks back from the day before day while entries
// are non-empty. It stops at floor (exclusive) when set, and after limit
// days when limit > 0.
func (s *Service) consecutiveInterference(ctx context.Context, r repos, day, floor string, limit int) (int, error) {
	n := 0
	for d := clock.MustAddDays(day, -1); floor == "" || d > floor; d = clock.MustAddDays(d, -1) {
		if limit > 0 && n >= limit {
			break
		}
		tags, err := s.interferenceOn(ctx, r, d)
		if err != nil {
			return 0, err
		}
		if len(tags) == 0 {
			break
		}
		n++
	}
	return n, nil
}

// interferenceDaysInWindow counts days in [today-6, today] with interference.
func (s *Service) interferenceDaysInWindow(ctx context.Context, r repos, today string) (int, error) {
	since := clock.MustAddDays(today, -(trendWindow - 1))
	entries, corrupt, err := r.interference.ListSince(ctx, since)
	if err != nil {
		return 0, err
	}
	for _, ce := range corrupt {
		s.logger.Warn("ignoring corrupt interference entry", "day", ce.Key, "error", ce)
	}
	n := 0
	for _, e := range entries {
		if e.Day <= today {
			n++
		}
	}
	return n, nil
}

// escalate engages suppression for today when the interference run before
// today reaches the configured length.
func (s *Service) escalate(ctx context.Context, r repos, today string) (bool, error) {
	anchor, _, err := r.state.Get(ctx, storage.KeySuppressionAnchor)
	if err != nil {
		return false, err
	}
	n, err := s.consecutiveInterference(ctx, r, today, anchor, s.rules.SuppressionDays)
	if err != nil {
		return false, err
	}
	if n < s.rules.SuppressionDays {
		return false, nil
	}
	if err := r.state.Set(ctx, storage.KeySuppressionDay, today); err != nil {
		return false, err
	}
	if err := r.state.Set(ctx, storage.KeySuppressionAnchor, today); err != nil {
		return false, err
	}
	return true, nil
}
