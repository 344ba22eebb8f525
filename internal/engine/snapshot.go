package engine

import (
	"context"
	"time"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

type StatBlock struct {
	Strength     int `json:"str" yaml:"str"`
	Agility      int `json:"agi" yaml:"agi"`
	Intelligence int `json:"int" yaml:"int"`
	Vitality     int `json:"vit" yaml:"vit"`
	Willpower    int `json:"will" yaml:"will"`
}

// Get returns the value for stat.
func (b StatBlock) Get(stat Stat) int {
	switch stat {
	case StatStrength:
		return b.Strength
	case StatAgility:
		return b.Agility
	case StatIntelligence:
		return b.Intelligence
	case StatVitality:
		return b.Vitality
	case StatWillpower:
		return b.Willpower
	default:
		return 0
	}
}

type PlayerView struct {
	Level      int       `json:"level" yaml:"level"`
	Experience int       `json:"experience" yaml:"experience"`
	Required   int       `json:"required" yaml:"required"`
	Stats      StatBlock `json:"stats" yaml:"stats"`
	Title      string    `json:"title" yaml:"title"`
	Rank       string    `json:"rank" yaml:"rank"`
	Tier       int       `json:"tier" yaml:"tier"`
	Ascension  Ascension `json:"ascension" yaml:"ascension"`
}

func NewPlayerView(p *storage.Player) PlayerView {
	return PlayerView{
		Level:      p.Level,
		Experience: p.Experience,
		Required:   RequiredForLevel(p.Level),
		Stats: StatBlock{
			Strength:     p.Str,
			Agility:      p.Agi,
			Intelligence: p.Int,
			Vitality:     p.Vit,
			Willpower:    p.Will,
		},
		Title:     TitleFor(p.Level),
		Rank:      RankFor(p.Level),
		Tier:      TierFor(p.Level),
		Ascension: AscensionFor(p.Level),
	}
}

// Snapshot is everything a presentation layer reads.
type Snapshot struct {
	Day                string        `json:"day" yaml:"day"`
	Player             PlayerView    `json:"player" yaml:"player"`
	Quests             []Quest       `json:"quests" yaml:"quests"`
	Status             Status        `json:"status" yaml:"status"`
	Trend              Status        `json:"trend" yaml:"trend"`
	Message            string        `json:"message" yaml:"message"`
	InterferenceToday  bool          `json:"interference_today" yaml:"interference_today"`
	InterferenceTags   []string      `json:"interference_tags,omitempty" yaml:"interference_tags,omitempty"`
	InterferenceStreak int           `json:"interference_streak" yaml:"interference_streak"`
	Suppressed         bool          `json:"suppressed" yaml:"suppressed"`
	CurrentStreak      int           `json:"current_streak" yaml:"current_streak"`
	LongestStreak      int           `json:"longest_streak" yaml:"longest_streak"`
	Calendar           []CalendarDay `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	AwardedToday       int           `json:"awarded_today" yaml:"awarded_today"`
	Efficiency         float64       `json:"efficiency" yaml:"efficiency"`
	NextRollover       time.Time     `json:"next_rollover" yaml:"next_rollover"`
	Countdown          time.Duration `json:"-" yaml:"-"`
	PenaltyNotice      string        `json:"penalty_notice,omitempty" yaml:"penalty_notice,omitempty"`
}

// ActiveQuests returns the quests due today.
func (s *Snapshot) ActiveQuests() []Quest {
	var out []Quest
	for _, q := range s.Quests {
		if q.Active {
			out = append(out, q)
		}
	}
	return out
}

// Snapshot reads the current state. calendarDays sets the length of the
// streak calendar (0 for none). Callers run CheckRollover first.
func (s *Service) Snapshot(ctx context.Context, calendarDays int) (*Snapshot, error) {
	var snap *Snapshot
	err := s.view(ctx, func(r repos, today string) error {
		now := s.clock.Now()
		snap = &Snapshot{
			Day:          today,
			NextRollover: clock.NextMidnight(now),
			Countdown:    clock.Countdown(now),
		}

		p, err := s.loadPlayer(ctx, r)
		if err != nil {
			return err
		}
		snap.Player = NewPlayerView(p)

		if snap.Quests, err = s.loadQuests(ctx, r, today); err != nil {
			return err
		}
		active := snap.ActiveQuests()
		snap.Efficiency = Efficiency(active)

		if snap.Suppressed, err = s.isSuppressed(ctx, r, today); err != nil {
			return err
		}
		if snap.InterferenceTags, err = s.interferenceOn(ctx, r, today); err != nil {
			return err
		}
		snap.InterferenceToday = len(snap.InterferenceTags) > 0
		if snap.InterferenceStreak, err = s.consecutiveInterference(ctx, r, today, "", 0); err != nil {
			return err
		}
		week, err := s.interferenceDaysInWindow(ctx, r, today)
		if err != nil {
			return err
		}
		snap.Status = Classify(snap.Suppressed, snap.InterferenceToday)
		snap.Trend = ClassifyTrend(snap.Suppressed, week)
		snap.Message = StatusMessage(snap.Status)

		days, err := r.streaks.ListDays(ctx)
		if err != nil {
			return err
		}
		snap.CurrentStreak = CurrentStreak(days, today)
		snap.LongestStreak = LongestStreak(days)
		snap.Calendar = Calendar(days, today, calendarDays)

		if snap.AwardedToday, err = s.awardedToday(ctx, r, today); err != nil {
			return err
		}
		if day, ok, err := r.state.Get(ctx, storage.KeyLastPenaltyDay); err != nil {
			return err
		} else if ok {
			snap.PenaltyNotice = day
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
