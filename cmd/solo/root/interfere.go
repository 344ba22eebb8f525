package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newInterfereCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interfere <tag>...",
		Short: "Log today's interference (e.g. gaming, social, porn)",
		Long:  "Log interference tags for today. Seven consecutive days of interference suppress rewards for a day.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one tag is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.LogInterference(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if len(res.Added) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" Already logged for "+res.Day+": "+strings.Join(res.Tags, ", ")))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Interference detected.")+" "+strings.Join(res.Tags, ", "))

			streak, err := svc.InterferenceStreak(cmd.Context())
			if err != nil {
				return err
			}
			limit := svc.Rules().SuppressionDays
			if streak > 0 && streak < limit {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%d consecutive day(s); suppression at %d.", streak, limit)))
			}
			return nil
		},
	}

	return cmd
}
