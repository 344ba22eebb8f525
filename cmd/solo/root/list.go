package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.ListQuests(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				quests = activeOnly(quests)
			}
			if ok, err := writeStructured(cmd.OutOrStdout(), output, quests); ok || err != nil {
				return err
			}

			title := "Today's quests"
			if all {
				title = "All quests"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, title))
			if len(quests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests. Add one with: solo add <name>"))
				return nil
			}
			for _, q := range quests {
				fmt.Fprintln(cmd.OutOrStdout(), questLine(q))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include quests not due today")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|json|yaml)")
	return cmd
}

func activeOnly(quests []engine.Quest) []engine.Quest {
	out := make([]engine.Quest, 0, len(quests))
	for _, q := range quests {
		if q.Active {
			out = append(out, q)
		}
	}
	return out
}
