package engine

import (
	"github.com/amityadavvoid-ui/Syetem/internal/clock"
)

// IsActiveOn reports whether q is due on day. Inactive quests are hidden,
// excluded from scoring and exempt from penalties.
func IsActiveOn(q Quest, day string) bool {
	switch q.Cadence {
	case CadenceAlternate:
		n, err := clock.DaysBetween(q.CreatedDay, day)
		if err != nil {
			return false
		}
		return n > 0 && n%2 == 1
	case CadenceSpecific:
		if q.TargetDay == "" {
			return false
		}
		n, err := clock.DaysBetween(q.TargetDay, day)
		if err != nil || n < 0 {
			return false
		}
		if n == 0 {
			return true
		}
		switch q.Repeat {
		case RepeatDaily:
			return true
		case RepeatAlternate:
			return n%2 == 1
		default:
			return false
		}
	default:
		return true
	}
}

// ActiveOn returns the quests active on day, with Active set.
func ActiveOn(quests []Quest, day string) []Quest {
	var out []Quest
	for _, q := range quests {
		if IsActiveOn(q, day) {
			q.Active = true
			out = append(out, q)
		}
	}
	return out
}
