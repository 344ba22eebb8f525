package root

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/engine"
)

func newEditCmd() *cobra.Command {
	var flags questFlags
	var name string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a quest's name, stat, importance or schedule",
		Args:  questIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(cmd, &flags, name)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.EditQuest(cmd.Context(), parseQuestID(args), patch)
			if err != nil {
				return err
			}
			printQuestResult(cmd.OutOrStdout(), "Updated", res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	flags.register(cmd)
	return cmd
}

// buildPatch only sets the fields whose flags were given.
func buildPatch(cmd *cobra.Command, flags *questFlags, name string) (engine.QuestPatch, error) {
	var patch engine.QuestPatch
	changed := cmd.Flags().Changed

	if changed("name") {
		patch.Name = &name
	}
	if changed("stat") {
		stat, err := engine.ParseStat(flags.stat)
		if err != nil {
			return patch, err
		}
		patch.Stat = &stat
	}
	if changed("importance") {
		imp, err := engine.ParseImportance(flags.importance)
		if err != nil {
			return patch, err
		}
		patch.Importance = &imp
	}
	if changed("cadence") || changed("date") {
		c, err := flags.resolveCadence(cmd)
		if err != nil {
			return patch, err
		}
		patch.Cadence = &c
	}
	if changed("date") {
		patch.TargetDay = &flags.date
	}
	if changed("repeat") {
		rep, err := engine.ParseRepeatMode(flags.repeat)
		if err != nil {
			return patch, err
		}
		patch.Repeat = &rep
	}
	if patch == (engine.QuestPatch{}) {
		return patch, errors.New("nothing to change (see --help)")
	}
	return patch, nil
}
