package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

// RunBoard runs the board until the user quits or ctx is cancelled. A focus
// session still running at exit is forfeited and reported on out.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("run board: %w", err)
	}
	if m, ok := final.(boardModel); ok && !m.focusEnd.IsZero() {
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Focus session abandoned; no XP awarded."))
	}
	return nil
}
