package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Solo theme (CLI + TUI).
// Kept small: reusable styles and a few emojis.

const (
	IconQuest   = "🗡️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconFire    = "🔥"
	IconShield  = "🛡️"
	IconClock   = "⏳"
	IconSkull   = "💀"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cViolet  = lipgloss.Color("99")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("LEVEL DOWN")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusBadge renders a system status as "SYSTEM STATUS: X".
func StatusBadge(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	text := "SYSTEM STATUS: " + strings.ToUpper(s)
	switch s {
	case "stable":
		return Good.Render(text)
	case "warning":
		return Warn.Render(text)
	case "unstable", "degrading":
		return lipgloss.NewStyle().Bold(true).Foreground(cWarn).Underline(true).Render(text)
	case "suppression":
		return Bad.Render(text)
	default:
		return Muted.Render(text)
	}
}

func QuestState(completed bool, active bool) string {
	switch {
	case !active:
		return Muted.Render("idle")
	case completed:
		return Good.Render("done")
	default:
		return Warn.Render("open")
	}
}

// ImportanceMark marks weighted quests: "" normal, "!" important, "!!" critical.
func ImportanceMark(importance string) string {
	switch importance {
	case "important":
		return Warn.Render("!")
	case "critical":
		return Bad.Render("!!")
	default:
		return ""
	}
}

// TierStyle colors the level line by tier.
func TierStyle(tier int) lipgloss.Style {
	switch tier {
	case 3:
		return lipgloss.NewStyle().Bold(true).Foreground(cBad)
	case 2:
		return lipgloss.NewStyle().Bold(true).Foreground(cViolet)
	default:
		return Gold
	}
}

func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
