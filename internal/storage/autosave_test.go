package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *storage.Store {
	t.Helper()
	backend, err := storage.NewFileBackend(filepath.Join(t.TempDir(), "keeper.json"))
	require.NoError(t, err)
	return storage.NewStore(&storage.StoreConfig{Backend: backend, TimeProvider: clock.Fixed(now)})
}

func TestAutoSaver_Debounces(t *testing.T) {
	store := newFileStore(t)
	var built atomic.Int32

	saver := storage.NewAutoSaver(&storage.AutoSaverConfig{
		Store: store,
		Delay: 20 * time.Millisecond,
		Source: func(context.Context) (*storage.Snapshot, error) {
			built.Add(1)
			snap := storage.Default(now)
			snap.SelectedSystem = "cyberpunk_red"
			return snap, nil
		},
	})

	for i := 0; i < 5; i++ {
		saver.Schedule()
	}

	require.Eventually(t, func() bool { return saver.Saves() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, saver.Saves())
	assert.Equal(t, int32(1), built.Load())

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cyberpunk_red", loaded.SelectedSystem)
}

func TestAutoSaver_RespectsPreference(t *testing.T) {
	store := newFileStore(t)
	saver := storage.NewAutoSaver(&storage.AutoSaverConfig{
		Store: store,
		Delay: time.Hour,
		Source: func(context.Context) (*storage.Snapshot, error) {
			snap := storage.Default(now)
			snap.UserPreferences.AutoSave = false
			return snap, nil
		},
	})

	saver.Schedule()
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, 0, saver.Saves())

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Used)
}

func TestAutoSaver_CloseFlushes(t *testing.T) {
	store := newFileStore(t)
	saver := storage.NewAutoSaver(&storage.AutoSaverConfig{
		Store: store,
		Delay: time.Hour,
		Source: func(context.Context) (*storage.Snapshot, error) {
			return storage.Default(now), nil
		},
	})

	require.NoError(t, saver.Flush(context.Background()), "nothing pending is a no-op")
	assert.Equal(t, 0, saver.Saves())

	saver.Schedule()
	require.NoError(t, saver.Close(context.Background()))
	assert.Equal(t, 1, saver.Saves())

	saver.Schedule()
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, 1, saver.Saves(), "closed savers ignore new schedules")
}

func TestAutoSaver_SourceError(t *testing.T) {
	saver := storage.NewAutoSaver(&storage.AutoSaverConfig{
		Store: newFileStore(t),
		Delay: time.Hour,
		Source: func(context.Context) (*storage.Snapshot, error) {
			return nil, errors.New("boom")
		},
	})

	saver.Schedule()
	assert.Error(t, saver.Flush(context.Background()))
}
