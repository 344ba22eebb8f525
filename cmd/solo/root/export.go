package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/snapshot"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the full state to a CBOR snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			db, cleanup, err := openDB(cmd.Context(), st)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := snapshot.Export(cmd.Context(), db, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Exported")+" "+args[0])
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Snapshot", doc.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Quests", len(doc.Quests)))
			return nil
		},
	}

	return cmd
}
