package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.StorageBackend)
	assert.Equal(t, config.SnapshotFile, cfg.Snapshot.Backend)
	assert.Equal(t, 2*time.Second, cfg.Snapshot.AutoSaveDelay)
	assert.Equal(t, "dnd5e", cfg.SelectedSystem)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SNAPSHOT_BACKEND", "sqlite")
	t.Setenv("SNAPSHOT_PATH", "/var/lib/keeper.db")
	t.Setenv("AUTOSAVE_DELAY", "500ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, config.SnapshotSQLite, cfg.Snapshot.Backend)
	assert.Equal(t, "/var/lib/keeper.db", cfg.Snapshot.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Snapshot.AutoSaveDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"storage backend", "STORAGE_BACKEND", "postgres"},
		{"snapshot backend", "SNAPSHOT_BACKEND", "s3"},
		{"autosave delay", "AUTOSAVE_DELAY", "0s"},
		{"malformed delay", "AUTOSAVE_DELAY", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
