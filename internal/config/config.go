// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/rcliao/redstone-calc/internal/settings"
	"github.com/rcliao/redstone-calc/internal/store"
)

// Prefix is the environment variable prefix.
const Prefix = "REDSTONE"

// Slot backends.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Config is read from REDSTONE_* variables, after an optional .env file.
type Config struct {
	DataDir          string        `envconfig:"DATA_DIR"`
	SlotsBackend     string        `envconfig:"SLOTS_BACKEND" default:"text"`
	SpeechCommand    string        `envconfig:"SPEECH_CMD"`
	ProgressSteps    int           `envconfig:"PROGRESS_STEPS" default:"10"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL" default:"100ms"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"warn"`
	LogFile          string        `envconfig:"LOG_FILE"`
}

// Load reads envFile (if it exists) into the environment and then
// processes REDSTONE_* variables. Variables already set win over envFile.
func Load(envFile string) (Config, error) {
	var cfg Config
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return cfg, cfg.Validate()
}

// DefaultDataDir is ~/.redstone-calc.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".redstone-calc"
	}
	return filepath.Join(home, ".redstone-calc")
}

// Validate rejects values no component can use.
func (c Config) Validate() error {
	switch c.SlotsBackend {
	case BackendText, BackendSQLite:
	default:
		return fmt.Errorf("unknown slots backend %q (use %s or %s)", c.SlotsBackend, BackendText, BackendSQLite)
	}
	if c.ProgressSteps < 0 {
		return fmt.Errorf("progress steps must not be negative, got %d", c.ProgressSteps)
	}
	if c.ProgressInterval < 0 {
		return fmt.Errorf("progress interval must not be negative, got %s", c.ProgressInterval)
	}
	return nil
}

// SlotsPath is the text slot file.
func (c Config) SlotsPath() string { return filepath.Join(c.DataDir, store.DefaultSlotsFile) }

// SettingsPath is the settings file.
func (c Config) SettingsPath() string { return filepath.Join(c.DataDir, settings.DefaultFile) }

// DBPath is the SQLite database.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, store.DefaultDBFile) }
