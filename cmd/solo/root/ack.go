package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newAckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Dismiss the penalty notice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.AcknowledgePenalty(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconDone+" Penalty notice dismissed."))
			return nil
		},
	}

	return cmd
}
