package engine

import (
	"strings"
)

// ParseStat parses user input to a Stat. Full names and the short keys
// are accepted.
func ParseStat(input string) (Stat, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "str", "strength":
		return StatStrength, nil
	case "agi", "agility":
		return StatAgility, nil
	case "int", "intelligence":
		return StatIntelligence, nil
	case "vit", "vitality":
		return StatVitality, nil
	case "will", "willpower":
		return StatWillpower, nil
	default:
		return "", ValidationError{Field: "stat", Reason: "unknown stat " + quote(input)}
	}
}

// ParseImportance parses user input. Empty input means Normal.
func ParseImportance(input string) (Importance, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "normal":
		return ImportanceNormal, nil
	case "important", "high":
		return ImportanceImportant, nil
	case "critical", "crit":
		return ImportanceCritical, nil
	default:
		return "", ValidationError{Field: "importance", Reason: "unknown importance " + quote(input)}
	}
}

// ParseCadence parses user input. Empty input means Daily.
func ParseCadence(input string) (Cadence, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "daily":
		return CadenceDaily, nil
	case "alternate", "alt":
		return CadenceAlternate, nil
	case "specific", "date":
		return CadenceSpecific, nil
	default:
		return "", ValidationError{Field: "cadence", Reason: "unknown cadence " + quote(input)}
	}
}

// ParseRepeatMode parses user input. Empty input means None.
func ParseRepeatMode(input string) (RepeatMode, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "none":
		return RepeatNone, nil
	case "daily":
		return RepeatDaily, nil
	case "alternate", "alt":
		return RepeatAlternate, nil
	default:
		return "", ValidationError{Field: "repeat", Reason: "unknown repeat mode " + quote(input)}
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
