package root

import (
	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Undo today's completion of a quest",
		Args:  questIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.RestoreQuest(cmd.Context(), parseQuestID(args))
			if err != nil {
				return err
			}
			printQuestResult(cmd.OutOrStdout(), "Restored", res)
			return nil
		},
	}

	return cmd
}
