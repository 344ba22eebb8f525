package root

import (
	"github.com/spf13/cobra"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest for today",
		Args:  questIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteQuest(cmd.Context(), parseQuestID(args))
			if err != nil {
				return err
			}
			printQuestResult(cmd.OutOrStdout(), "Completed", res)
			return nil
		},
	}

	return cmd
}
