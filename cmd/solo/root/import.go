package root

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/snapshot"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newImportCmd() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the full state from a snapshot",
		Long:  "Replace all state from a CBOR snapshot written by export, or with --legacy from a JSON dump of the browser app's localStorage.",
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

			var doc *snapshot.Document
			if legacy {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open legacy dump: %w", err)
				}
				doc, err = snapshot.DecodeLegacy(f, time.Now(), st.logger)
				f.Close()
				if err != nil {
					return err
				}
				if err := snapshot.Restore(cmd.Context(), db, doc); err != nil {
					return err
				}
			} else {
				if doc, err = snapshot.Import(cmd.Context(), db, args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Imported")+" "+args[0])
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", doc.Player.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Quests", len(doc.Quests)))

			// Imported state may be days old; close them now.
			res, err := newService(db, st).CheckRollover(cmd.Context())
			if err != nil {
				return err
			}
			if res.Ran {
				printRollover(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "Input is a JSON localStorage dump")
	return cmd
}
