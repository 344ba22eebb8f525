package root

import (
	"github.com/spf13/cobra"
)

func newRolloverCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Close the previous day now (normally automatic)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			run := svc.CheckRollover
			if force {
				run = svc.ForceRollover
			}
			res, err := run(cmd.Context())
			if err != nil {
				return err
			}
			printRollover(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Run even if today was already processed")
	return cmd
}
