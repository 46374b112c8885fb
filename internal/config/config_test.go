package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.ReminderInterval != "1m" {
		t.Errorf("ReminderInterval = %s, want 1m", cfg.ReminderInterval)
	}
	if cfg.DefaultQueryLimit != 100 {
		t.Errorf("DefaultQueryLimit = %d, want 100", cfg.DefaultQueryLimit)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should be set")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_dir: /tmp/dbtest\nlog_level: debug\nreminder_interval: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/dbtest" {
		t.Errorf("DataDir = %s, want /tmp/dbtest", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.ReminderInterval != "30s" {
		t.Errorf("ReminderInterval = %s, want 30s", cfg.ReminderInterval)
	}
	// Fields missing from the file keep their defaults.
	if cfg.DefaultQueryLimit != 100 {
		t.Errorf("DefaultQueryLimit = %d, want 100", cfg.DefaultQueryLimit)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_InvalidInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("reminder_interval: soonish\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected interval error")
	}
}

func TestLoad_NonPositiveLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_query_limit: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected limit error")
	}
}

func TestReminderCheckInterval(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"5m", 5 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"2d", 48 * time.Hour}, // extended syntax beyond time.ParseDuration
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := &Config{ReminderInterval: tt.raw}
			if got := c.ReminderCheckInterval(); got != tt.want {
				t.Errorf("ReminderCheckInterval(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReminderCheckInterval_FallsBackToMinute(t *testing.T) {
	c := &Config{ReminderInterval: "bogus"}
	if got := c.ReminderCheckInterval(); got != time.Minute {
		t.Errorf("fallback = %v, want 1m", got)
	}
}
