package root

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/config"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

const envDB = "SOLO_DB"

type settings struct {
	dbPath string
	rules  config.Rules
	logger *slog.Logger
}

// loadSettings merges flags, environment and the config file.
// Precedence: flag, then SOLO_DB, then config, then the XDG default.
func loadSettings(cmd *cobra.Command) (settings, error) {
	path := globals.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return settings{}, err
	}

	level := globals.logLevel
	applyStringConfig(cmd, "log-level", &level, cfg.Log.Level)
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return settings{}, err
	}

	dbPath := globals.dbPath
	if os.Getenv(envDB) == "" {
		applyStringConfig(cmd, "db", &dbPath, cfg.Storage.DBPath)
	}
	if dbPath == "" {
		dbPath, err = storage.ResolveDBPath()
		if err != nil {
			return settings{}, err
		}
	}

	rules, err := cfg.Rules.Resolve()
	if err != nil {
		return settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return settings{dbPath: dbPath, rules: rules, logger: logger}, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func openDB(ctx context.Context, st settings) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, st.dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func newService(db *sql.DB, st settings) *engine.Service {
	return engine.NewService(db, engine.WithRules(st.rules), engine.WithLogger(st.logger))
}

// openEngine opens the database and service without touching the day state.
func openEngine(cmd *cobra.Command) (*engine.Service, func(), error) {
	st, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(cmd.Context(), st)
	if err != nil {
		return nil, nil, err
	}
	return newService(db, st), cleanup, nil
}

// openService is openEngine plus the automatic midnight check every
// command runs before acting.
func openService(cmd *cobra.Command) (*engine.Service, func(), error) {
	svc, cleanup, err := openEngine(cmd)
	if err != nil {
		return nil, nil, err
	}
	res, err := svc.CheckRollover(cmd.Context())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if res.Ran && (len(res.Penalties) > 0 || res.SuppressionEngaged || res.SuppressionCleared) {
		printRollover(cmd.ErrOrStderr(), res)
	}
	return svc, cleanup, nil
}
