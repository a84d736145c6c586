package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "tasks"

// Backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Config aggregates all runtime settings.
type Config struct {
	DataDir        string        `mapstructure:"data_dir"`
	Backend        string        `mapstructure:"backend"`
	SaveDelay      time.Duration `mapstructure:"save_delay"`
	NotifyInterval time.Duration `mapstructure:"notify_interval"`
	Log            LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	File     string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:        defaultDataDir(),
		Backend:        BackendSQLite,
		SaveDelay:      300 * time.Millisecond,
		NotifyInterval: time.Minute,
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load layers the YAML file at path (or the default location when path is
// empty) and then .env and TASKS_* environment variables over the defaults.
// A missing default file is fine; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	_ = godotenv.Load(".env")

	cfg.DataDir = getString("TASKS_DATA_DIR", cfg.DataDir)
	cfg.Backend = getString("TASKS_BACKEND", cfg.Backend)
	cfg.SaveDelay = getDuration("TASKS_SAVE_DELAY", cfg.SaveDelay)
	cfg.NotifyInterval = getDuration("TASKS_NOTIFY_INTERVAL", cfg.NotifyInterval)
	cfg.Log.Level = getString("TASKS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Encoding = getString("TASKS_LOG_ENCODING", cfg.Log.Encoding)
	cfg.Log.File = getString("TASKS_LOG_FILE", cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Validate checks the settings that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendBolt)
	}
	if c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	if c.SaveDelay <= 0 {
		return fmt.Errorf("save_delay must be positive, got %s", c.SaveDelay)
	}
	if c.NotifyInterval <= 0 {
		return fmt.Errorf("notify_interval must be positive, got %s", c.NotifyInterval)
	}
	return nil
}

// StorePath is the database file for the configured backend.
func (c *Config) StorePath() string {
	if c.Backend == BackendBolt {
		return filepath.Join(c.DataDir, appName+".bolt")
	}
	return filepath.Join(c.DataDir, appName+".db")
}

// LogPath is where the log file goes unless log.file is set.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, appName+".log")
}

// DefaultPath returns the path to the user config file
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// defaultDataDir uses the XDG data directory or falls back to ~/.local/share
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
