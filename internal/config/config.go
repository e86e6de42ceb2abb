// Package config loads the engine configuration from a YAML file and
// applies defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the sync engine knobs
const (
	DefaultMaxRetries               = 5
	DefaultSyncInterval             = 30 * time.Second
	DefaultConflictWaitTimeout      = 5 * time.Minute
	DefaultAutoResolveThreshold     = 5 * time.Second
	DefaultDrainPause               = 200 * time.Millisecond
	DefaultConnectivityPollInterval = 15 * time.Second
)

// Duration оборачивает time.Duration для разбора строк вида "30s" из YAML
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config описывает конфигурацию движка синхронизации
type Config struct {
	// ServerURL is the base URL of the remote sync endpoint
	ServerURL string `yaml:"server_url"`

	// DBPath is the path to the local database file
	DBPath string `yaml:"db_path"`

	// Store selects the Local Store backend: "bolt" (default) or "sqlite"
	Store string `yaml:"store"`

	// LogLevel: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// MaxRetries is the per-entry send attempt bound; at the bound the
	// entity is marked permanently failed
	MaxRetries int `yaml:"max_retries"`

	// SyncInterval is the auto-sync ticker period while online
	SyncInterval Duration `yaml:"sync_interval"`

	// ConflictWaitTimeout bounds how long a drain waits for a manual
	// conflict resolution before moving on
	ConflictWaitTimeout Duration `yaml:"conflict_wait_timeout"`

	// AutoResolveThreshold is the minimum timestamp gap at which conflicts
	// are resolved automatically in favor of the newer side
	AutoResolveThreshold Duration `yaml:"auto_resolve_threshold"`

	// DrainPause is the pause between queue items during a drain
	DrainPause Duration `yaml:"drain_pause"`

	// ConnectivityPollInterval is the polling period of the connectivity
	// watcher fallback
	ConnectivityPollInterval Duration `yaml:"connectivity_poll_interval"`
}

// Default returns the configuration with all defaults applied
func Default() *Config {
	return &Config{
		ServerURL:                "http://localhost:8080",
		DBPath:                   "fieldsync.db",
		Store:                    "bolt",
		LogLevel:                 "info",
		MaxRetries:               DefaultMaxRetries,
		SyncInterval:             Duration(DefaultSyncInterval),
		ConflictWaitTimeout:      Duration(DefaultConflictWaitTimeout),
		AutoResolveThreshold:     Duration(DefaultAutoResolveThreshold),
		DrainPause:               Duration(DefaultDrainPause),
		ConnectivityPollInterval: Duration(DefaultConnectivityPollInterval),
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// Отсутствующий файл — не ошибка: возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be positive, got %d", c.MaxRetries)
	}
	if c.SyncInterval.Std() <= 0 {
		return fmt.Errorf("sync_interval must be positive, got %s", c.SyncInterval.Std())
	}
	if c.Store != "bolt" && c.Store != "sqlite" {
		return fmt.Errorf("store must be \"bolt\" or \"sqlite\", got %q", c.Store)
	}
	return nil
}
