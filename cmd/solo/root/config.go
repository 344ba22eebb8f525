package root

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := globals.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless path exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# solo configuration
# Uncomment a value to enable it. CLI flags override config values.

[rules]
# max_quests = %d          # Quest capacity
# envelope = %d           # Daily XP envelope split across active quests
# penalty_xp = %d          # XP lost per missed quest at rollover
# suppression_days = %d     # Consecutive interference days before suppression
# focus_xp = %d             # XP per completed focus session
# focus_minutes = %d       # Focus session length

[storage]
# db_path = %q

[log]
# level = "warn"           # debug|info|warn|error
`,
		config.DefaultMaxQuests,
		config.DefaultEnvelope,
		config.DefaultPenaltyXP,
		config.DefaultSuppressionDays,
		config.DefaultFocusXP,
		config.DefaultFocusMinutes,
		config.DefaultDBPath(),
	)
}
