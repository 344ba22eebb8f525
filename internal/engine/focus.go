package engine

import (
	"context"

	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

type FocusResult struct {
	Awarded    int
	Level      LevelChange
	Suppressed bool
}

// CompleteFocusSession grants the focus-session reward unless today is
// suppressed.
func (s *Service) CompleteFocusSession(ctx context.Context) (*FocusResult, error) {
	var res FocusResult
	err := s.update(ctx, func(r repos, today string) error {
		suppressed, err := s.isSuppressed(ctx, r, today)
		if err != nil {
			return err
		}
		if suppressed {
			res.Suppressed = true
			return nil
		}
		p, err := s.loadPlayer(ctx, r)
		if err != nil {
			return err
		}
		res.Level = ApplyExperience(p, s.rules.FocusXP)
		res.Awarded = s.rules.FocusXP
		return r.players.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("focus session completed", "xp", res.Awarded, "suppressed", res.Suppressed)
	return &res, nil
}

// AcknowledgePenalty clears the pending penalty notice.
func (s *Service) AcknowledgePenalty(ctx context.Context) error {
	return s.update(ctx, func(r repos, _ string) error {
		return r.state.Delete(ctx, storage.KeyLastPenaltyDay)
	})
}
