package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxNameWidth caps quest names in the list column.
const maxNameWidth = 40

func ansiWidth(s string) int {
	return lipgloss.Width(s)
}

// padRight pads s with spaces to width visible columns. Styled text is
// measured without its escape codes.
func padRight(s string, width int) string {
	w := ansiWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateName shortens plain text to width display cells. Wide runes
// count as two.
func truncateName(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
