// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Rules   RulesConfig   `toml:"rules"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// RulesConfig maps engine tuning values. Nil means "use the default".
type RulesConfig struct {
	MaxQuests       *int `toml:"max_quests"`
	Envelope        *int `toml:"envelope"`
	PenaltyXP       *int `toml:"penalty_xp"`
	SuppressionDays *int `toml:"suppression_days"`
	FocusXP         *int `toml:"focus_xp"`
	FocusMinutes    *int `toml:"focus_minutes"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DBPath *string `toml:"db_path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
