package storage

import (
	"context"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
)

// DefaultAutoSaveDelay is the quiet period before a scheduled save runs
const DefaultAutoSaveDelay = 2 * time.Second

// SnapshotSource builds the snapshot to persist
type SnapshotSource func(ctx context.Context) (*Snapshot, error)

// AutoSaver debounces saves: every Schedule restarts the delay and only the
// last one writes. Snapshots whose preferences turn autoSave off are not
// written.
type AutoSaver struct {
	store  *Store
	source SnapshotSource
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool
	saves   int
}

// AutoSaverConfig holds configuration for the auto saver
type AutoSaverConfig struct {
	Store  *Store         // Required
	Source SnapshotSource // Required
	Delay  time.Duration  // Optional, defaults to two seconds
	Logger *zap.Logger    // Optional
}

// NewAutoSaver creates an auto saver
func NewAutoSaver(cfg *AutoSaverConfig) *AutoSaver {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Source == nil {
		panic("source is required")
	}

	a := &AutoSaver{
		store:  cfg.Store,
		source: cfg.Source,
		delay:  cfg.Delay,
		logger: cfg.Logger,
	}
	if a.delay <= 0 {
		a.delay = DefaultAutoSaveDelay
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Schedule (re)starts the delay before the next save
func (a *AutoSaver) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.pending = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if err := a.Flush(context.Background()); err != nil {
			a.logger.Error("auto save failed", zap.Error(err))
		}
	})
}

// Flush runs a pending save now
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.pending {
		return nil
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = false

	snap, err := a.source(ctx)
	if err != nil {
		return dnderr.Wrap(err, "failed to build snapshot")
	}
	if !snap.UserPreferences.AutoSave {
		a.logger.Debug("auto save skipped, disabled in preferences")
		return nil
	}
	if err := a.store.Save(ctx, snap); err != nil {
		return err
	}
	a.saves++
	return nil
}

// Close flushes a pending save and stops accepting new ones
func (a *AutoSaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	return a.Flush(ctx)
}

// Saves reports how many scheduled saves were written
func (a *AutoSaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
