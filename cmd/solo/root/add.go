package root

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/engine"
)

type questFlags struct {
	stat       string
	importance string
	cadence    string
	date       string
	repeat     string
}

func (f *questFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.stat, "stat", "s", "str", "Stat credited on completion (str|agi|int|vit|will)")
	cmd.Flags().StringVarP(&f.importance, "importance", "i", "normal", "Importance (normal|important|critical)")
	cmd.Flags().StringVarP(&f.cadence, "cadence", "c", "daily", "Cadence (daily|alternate|specific)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Target day YYYY-MM-DD (implies --cadence specific)")
	cmd.Flags().StringVarP(&f.repeat, "repeat", "r", "none", "Repeat after the target day (none|daily|alternate)")
}

// resolveCadence reads --cadence, switching to specific when only --date is given.
func (f *questFlags) resolveCadence(cmd *cobra.Command) (engine.Cadence, error) {
	if cmd.Flags().Changed("date") && !cmd.Flags().Changed("cadence") {
		return engine.CadenceSpecific, nil
	}
	return engine.ParseCadence(f.cadence)
}

func newAddCmd() *cobra.Command {
	var flags questFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := engine.QuestInput{
				Name:      strings.Join(args, " "),
				TargetDay: flags.date,
			}
			var err error
			if in.Stat, err = engine.ParseStat(flags.stat); err != nil {
				return err
			}
			if in.Importance, err = engine.ParseImportance(flags.importance); err != nil {
				return err
			}
			if in.Cadence, err = flags.resolveCadence(cmd); err != nil {
				return err
			}
			if in.Repeat, err = engine.ParseRepeatMode(flags.repeat); err != nil {
				return err
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddQuest(cmd.Context(), in)
			if err != nil {
				return err
			}
			printQuestResult(cmd.OutOrStdout(), "Added", res)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
