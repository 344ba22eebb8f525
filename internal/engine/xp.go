package engine

import (
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

const (
	DefaultLevel = 1
	DefaultStat  = 10
)

// RequiredForLevel returns the experience needed to leave level:
// floor(100 + level^2 * 1.2). Integer math keeps the floor exact.
func RequiredForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + level*level*6/5
}

type LevelChange int

const (
	LevelSame LevelChange = iota
	LevelUp
	LevelDown
)

func (c LevelChange) String() string {
	switch c {
	case LevelUp:
		return "up"
	case LevelDown:
		return "down"
	default:
		return "none"
	}
}

// ApplyExperience adds delta (possibly negative) and renormalizes level and
// experience. At level 1 negative overflow is discarded.
func ApplyExperience(p *storage.Player, delta int) LevelChange {
	if p.Level < 1 {
		p.Level = 1
	}
	before := p.Level

	p.Experience += delta
	for p.Experience >= RequiredForLevel(p.Level) {
		p.Experience -= RequiredForLevel(p.Level)
		p.Level++
	}
	for p.Experience < 0 && p.Level > 1 {
		p.Level--
		p.Experience += RequiredForLevel(p.Level)
	}
	if p.Experience < 0 {
		p.Experience = 0
	}

	switch {
	case p.Level > before:
		return LevelUp
	case p.Level < before:
		return LevelDown
	default:
		return LevelSame
	}
}

func statField(p *storage.Player, stat Stat) *int {
	switch stat {
	case StatStrength:
		return &p.Str
	case StatAgility:
		return &p.Agi
	case StatIntelligence:
		return &p.Int
	case StatVitality:
		return &p.Vit
	case StatWillpower:
		return &p.Will
	default:
		return nil
	}
}

// AdjustStat adds delta to stat, flooring at zero.
func AdjustStat(p *storage.Player, stat Stat, delta int) {
	f := statField(p, stat)
	if f == nil {
		return
	}
	*f += delta
	if *f < 0 {
		*f = 0
	}
}

type band struct {
	min  int
	name string
}

var titles = []band{
	{150, "Grim Reaper"},
	{100, "Shadow Monarch"},
	{71, "Monarch Candidate"},
	{50, "S Rank Hunter"},
	{30, "Awakened"},
	{0, "Unawakened"},
}

var ranks = []band{
	{150, "SSS"},
	{120, "SS"},
	{100, "S"},
	{80, "A"},
	{60, "B"},
	{40, "C"},
	{20, "D"},
	{0, "E"},
}

func lookup(bands []band, level int) string {
	for _, b := range bands {
		if level >= b.min {
			return b.name
		}
	}
	return bands[len(bands)-1].name
}

func TitleFor(level int) string { return lookup(titles, level) }

func RankFor(level int) string { return lookup(ranks, level) }

// TierFor returns the presentation tier: 1 below 100, 2 below 150, else 3.
func TierFor(level int) int {
	switch {
	case level >= 150:
		return 3
	case level >= 100:
		return 2
	default:
		return 1
	}
}

type AscensionPhase string

const (
	AscensionDormant    AscensionPhase = "dormant"
	AscensionDrift      AscensionPhase = "alignment drift"
	AscensionRecognized AscensionPhase = "recognized"
)

// Ascension is progress toward the level-150 entity. Progress is in [0, 1].
type Ascension struct {
	Phase    AscensionPhase `json:"phase" yaml:"phase"`
	Progress float64        `json:"progress" yaml:"progress"`
}

func AscensionFor(level int) Ascension {
	switch {
	case level >= 150:
		return Ascension{Phase: AscensionRecognized, Progress: 1}
	case level >= 100:
		return Ascension{Phase: AscensionDrift, Progress: float64(level-100) / 50}
	default:
		if level < 0 {
			level = 0
		}
		return Ascension{Phase: AscensionDormant, Progress: float64(level) / 100}
	}
}
