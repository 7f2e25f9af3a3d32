package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends for the entity repositories
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Snapshot backends
const (
	SnapshotFile   = "file"
	SnapshotSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Log      LogConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	SelectedSystem string `envconfig:"SELECTED_SYSTEM" default:"dnd5e"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Encoding string `envconfig:"LOG_ENCODING" default:"console"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// SnapshotConfig holds snapshot persistence configuration
type SnapshotConfig struct {
	Backend       string        `envconfig:"SNAPSHOT_BACKEND" default:"file"`
	Path          string        `envconfig:"SNAPSHOT_PATH" default:"data/rpg-keeper.json"`
	AutoSaveDelay time.Duration `envconfig:"AUTOSAVE_DELAY" default:"2s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.Snapshot.Backend = strings.ToLower(strings.TrimSpace(cfg.Snapshot.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StorageRedis, c.StorageBackend)
	}

	switch c.Snapshot.Backend {
	case SnapshotFile, SnapshotSQLite:
	default:
		return fmt.Errorf("SNAPSHOT_BACKEND must be %q or %q, got %q", SnapshotFile, SnapshotSQLite, c.Snapshot.Backend)
	}

	if strings.TrimSpace(c.Snapshot.Path) == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required")
	}
	if c.Snapshot.AutoSaveDelay <= 0 {
		return fmt.Errorf("AUTOSAVE_DELAY must be positive")
	}
	return nil
}
