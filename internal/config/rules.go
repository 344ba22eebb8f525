package config

import (
	"fmt"
	"time"
)

const (
	DefaultMaxQuests       = 15
	DefaultEnvelope        = 100
	DefaultPenaltyXP       = 10
	DefaultSuppressionDays = 7
	DefaultFocusXP         = 5
	DefaultFocusMinutes    = 35
)

// Rules holds the tunable constants of the progression engine.
type Rules struct {
	MaxQuests       int
	Envelope        int
	PenaltyXP       int
	SuppressionDays int
	FocusXP         int
	FocusLength     time.Duration
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		MaxQuests:       DefaultMaxQuests,
		Envelope:        DefaultEnvelope,
		PenaltyXP:       DefaultPenaltyXP,
		SuppressionDays: DefaultSuppressionDays,
		FocusXP:         DefaultFocusXP,
		FocusLength:     DefaultFocusMinutes * time.Minute,
	}
}

// Resolve overlays the file values on top of DefaultRules and validates the result.
func (rc RulesConfig) Resolve() (Rules, error) {
	r := DefaultRules()
	if rc.MaxQuests != nil {
		r.MaxQuests = *rc.MaxQuests
	}
	if rc.Envelope != nil {
		r.Envelope = *rc.Envelope
	}
	if rc.PenaltyXP != nil {
		r.PenaltyXP = *rc.PenaltyXP
	}
	if rc.SuppressionDays != nil {
		r.SuppressionDays = *rc.SuppressionDays
	}
	if rc.FocusXP != nil {
		r.FocusXP = *rc.FocusXP
	}
	if rc.FocusMinutes != nil {
		r.FocusLength = time.Duration(*rc.FocusMinutes) * time.Minute
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate rejects rule sets the engine cannot honor.
func (r Rules) Validate() error {
	if r.MaxQuests <= 0 {
		return fmt.Errorf("rules.max_quests must be > 0")
	}
	if r.Envelope < 0 {
		return fmt.Errorf("rules.envelope must be >= 0")
	}
	if r.PenaltyXP < 0 {
		return fmt.Errorf("rules.penalty_xp must be >= 0")
	}
	if r.SuppressionDays <= 0 {
		return fmt.Errorf("rules.suppression_days must be > 0")
	}
	if r.FocusXP < 0 {
		return fmt.Errorf("rules.focus_xp must be >= 0")
	}
	if r.FocusLength <= 0 {
		return fmt.Errorf("rules.focus_minutes must be > 0")
	}
	return nil
}
