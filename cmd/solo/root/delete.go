package root

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a quest (its stat credit is returned)",
		Args:    questIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.DeleteQuest(cmd.Context(), parseQuestID(args))
			if err != nil {
				return err
			}
			printQuestResult(cmd.OutOrStdout(), "Deleted", res)
			return nil
		},
	}

	return cmd
}
