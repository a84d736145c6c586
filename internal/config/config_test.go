package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{
		"TASKS_DATA_DIR", "TASKS_BACKEND", "TASKS_SAVE_DELAY", "TASKS_NOTIFY_INTERVAL",
		"TASKS_LOG_LEVEL", "TASKS_LOG_ENCODING", "TASKS_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.SaveDelay != 300*time.Millisecond {
		t.Errorf("SaveDelay = %v, want 300ms", cfg.SaveDelay)
	}
	if want := filepath.Join(dir, "data", "tasks"); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(dir, "data", "tasks", "tasks.db"); cfg.StorePath() != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath(), want)
	}
	if want := filepath.Join(dir, "data", "tasks", "tasks.log"); cfg.LogPath() != want {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath(), want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, DefaultPath(), `
data_dir: `+filepath.Join(dir, "elsewhere")+`
backend: bolt
save_delay: 500ms
notify_interval: 5m
log:
  level: debug
  encoding: console
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendBolt {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendBolt)
	}
	if cfg.SaveDelay != 500*time.Millisecond {
		t.Errorf("SaveDelay = %v, want 500ms", cfg.SaveDelay)
	}
	if cfg.NotifyInterval != 5*time.Minute {
		t.Errorf("NotifyInterval = %v, want 5m", cfg.NotifyInterval)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Encoding != "console" {
		t.Errorf("Log = %+v, want debug/console", cfg.Log)
	}
	if !strings.HasSuffix(cfg.StorePath(), "tasks.bolt") {
		t.Errorf("StorePath = %q, want a .bolt file", cfg.StorePath())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "backend: bolt\nsave_delay: 500ms\n")
	t.Setenv("TASKS_BACKEND", "sqlite")
	t.Setenv("TASKS_SAVE_DELAY", "1s")
	t.Setenv("TASKS_NOTIFY_INTERVAL", "not a duration")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.SaveDelay != time.Second {
		t.Errorf("SaveDelay = %v, want 1s", cfg.SaveDelay)
	}
	if cfg.NotifyInterval != time.Minute {
		t.Errorf("NotifyInterval = %v, want default 1m", cfg.NotifyInterval)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load with missing explicit file succeeded, want error")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("TASKS_BACKEND", "postgres")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Load error = %v, want unknown backend", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"zero save delay", func(c *Config) { c.SaveDelay = 0 }},
		{"negative notify interval", func(c *Config) { c.NotifyInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate succeeded, want error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}
