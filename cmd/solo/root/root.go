package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

const Version = "0.1.0"

type globalOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

var globals globalOptions

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "solo",
		Short:         "Solo: a self-discipline system with levels, stats and penalties",
		Long:          "Solo tracks daily quests, scores them against a fixed XP envelope, penalizes missed days at midnight and suppresses rewards after a week of interference.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/solo/config.toml)")
	cmd.PersistentFlags().StringVar(&globals.dbPath, "db", "", "Database path (default $SOLO_DB or $XDG_DATA_HOME/solo/solo.db)")
	cmd.PersistentFlags().StringVar(&globals.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newStatusCmd(),
		newListCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newDoCmd(),
		newRestoreCmd(),
		newInterfereCmd(),
		newRolloverCmd(),
		newFocusCmd(),
		newAckCmd(),
		newBoardCmd(),
		newConfigCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
