package engine

type Stat string

const (
	StatStrength     Stat = "str"
	StatAgility      Stat = "agi"
	StatIntelligence Stat = "int"
	StatVitality     Stat = "vit"
	StatWillpower    Stat = "will"
)

// Stats lists every attribute in display order.
var Stats = []Stat{StatStrength, StatAgility, StatIntelligence, StatVitality, StatWillpower}

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatAgility, StatIntelligence, StatVitality, StatWillpower:
		return true
	default:
		return false
	}
}

func (s Stat) Label() string {
	switch s {
	case StatStrength:
		return "Strength"
	case StatAgility:
		return "Agility"
	case StatIntelligence:
		return "Intelligence"
	case StatVitality:
		return "Vitality"
	case StatWillpower:
		return "Willpower"
	default:
		return string(s)
	}
}

type Importance string

const (
	ImportanceNormal    Importance = "normal"
	ImportanceImportant Importance = "important"
	ImportanceCritical  Importance = "critical"
)

func (i Importance) IsValid() bool {
	switch i {
	case ImportanceNormal, ImportanceImportant, ImportanceCritical:
		return true
	default:
		return false
	}
}

// Weight returns the scoring weight in tenths (1.0, 1.1, 1.2) so the
// envelope math stays in integers.
func (i Importance) Weight() int {
	switch i {
	case ImportanceImportant:
		return 11
	case ImportanceCritical:
		return 12
	default:
		return 10
	}
}

type Cadence string

const (
	CadenceDaily     Cadence = "daily"
	CadenceAlternate Cadence = "alternate"
	CadenceSpecific  Cadence = "specific"
)

func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceAlternate, CadenceSpecific:
		return true
	default:
		return false
	}
}

// RepeatMode controls recurrence of a specific-date quest after its target day.
type RepeatMode string

const (
	RepeatNone      RepeatMode = "none"
	RepeatDaily     RepeatMode = "daily"
	RepeatAlternate RepeatMode = "alternate"
)

func (r RepeatMode) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatAlternate:
		return true
	default:
		return false
	}
}

// Quest is the engine view of a stored quest.
type Quest struct {
	ID           int64      `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Stat         Stat       `json:"stat" yaml:"stat"`
	Importance   Importance `json:"importance" yaml:"importance"`
	Cadence      Cadence    `json:"cadence" yaml:"cadence"`
	TargetDay    string     `json:"target_day,omitempty" yaml:"target_day,omitempty"`
	Repeat       RepeatMode `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Completed    bool       `json:"completed" yaml:"completed"`
	CreditedStat Stat       `json:"credited_stat,omitempty" yaml:"credited_stat,omitempty"`
	CreatedDay   string     `json:"created_day" yaml:"created_day"`
	Active       bool       `json:"active" yaml:"active"`
}
