// Package config loads the daybook configuration file. Configuration is
// optional: a missing file yields the defaults, and any field left out
// of the file keeps its default value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// Config is the daybook configuration, read from config.yaml in the
// data directory.
type Config struct {
	// DataDir is where the SQLite database lives (default: ~/.daybook).
	DataDir string `yaml:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error (default: info).
	LogLevel string `yaml:"log_level,omitempty"`

	// ReminderInterval is how often due reminders are checked, in
	// duration syntax ("30s", "5m", "1h"). Default: 1m.
	ReminderInterval string `yaml:"reminder_interval,omitempty"`

	// DefaultQueryLimit caps query results when the caller gives no
	// limit (default: 100).
	DefaultQueryLimit int `yaml:"default_query_limit,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:           filepath.Join(home, ".daybook"),
		LogLevel:          "info",
		ReminderInterval:  "1m",
		DefaultQueryLimit: 100,
	}
}

// DefaultPath returns the default config file location,
// ~/.daybook/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".daybook", "config.yaml")
}

// Load reads the config file at path. A missing file is not an error:
// the defaults are returned. A file that exists but cannot be parsed is.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if _, err := str2duration.ParseDuration(cfg.ReminderInterval); err != nil {
		return nil, fmt.Errorf("config: invalid reminder_interval %q: %w", cfg.ReminderInterval, err)
	}
	if cfg.DefaultQueryLimit <= 0 {
		return nil, fmt.Errorf("config: default_query_limit must be positive, got %d", cfg.DefaultQueryLimit)
	}

	return cfg, nil
}

// ReminderCheckInterval returns the parsed reminder interval. Load
// already validated it, so a parse failure here falls back to a minute.
func (c *Config) ReminderCheckInterval() time.Duration {
	d, err := str2duration.ParseDuration(c.ReminderInterval)
	if err != nil {
		return time.Minute
	}
	return d
}
