package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newFocusCmd() *cobra.Command {
	var now bool

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus session and collect its XP",
		Long:  "Counts down one focus session and awards its XP when it ends. Interrupting forfeits the reward.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !now {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				if err := waitFocus(ctx, svc.Clock(), svc.Rules().FocusLength, cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			res, err := svc.CompleteFocusSession(cmd.Context())
			if err != nil {
				return err
			}
			if res.Suppressed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(ui.IconShield+" "+engine.StatusMessage(engine.StatusSuppression)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s +%d XP%s\n", ui.Good.Render(ui.IconBolt+" Focus session complete."), res.Awarded, levelBadge(res.Level))
			return nil
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "Record a session finished elsewhere without counting down")
	return cmd
}

// waitFocus blocks until length has elapsed on c. On a terminal the
// remaining time is redrawn every second.
func waitFocus(ctx context.Context, c clock.Clock, length time.Duration, w io.Writer) error {
	end := c.Now().Add(length)
	ticker := c.NewTicker(time.Second)
	defer ticker.Stop()

	live := isTerminal(w)
	if !live {
		fmt.Fprintf(w, "%s %s\n", ui.Key.Render(ui.IconClock+" Focus"), clock.FormatCountdown(length))
	}
	for {
		remaining := end.Sub(c.Now())
		if remaining <= 0 {
			if live {
				fmt.Fprint(w, "\r\033[K")
			}
			return nil
		}
		if live {
			fmt.Fprintf(w, "\r%s %s ", ui.Key.Render(ui.IconClock+" Focus"), clock.FormatCountdown(remaining))
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return errors.New("focus session interrupted; no XP awarded")
		case <-ticker.C:
		}
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
