package storage

//go:generate mockgen -destination=mock/mock_backend.go -package=mockstorage -source=store.go

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Backend holds one encoded envelope
type Backend interface {
	// Read returns the stored envelope, or nil when nothing was saved yet
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored envelope
	Write(ctx context.Context, data []byte) error

	// Clear removes the stored envelope
	Clear(ctx context.Context) error

	// Close releases the backend
	Close() error
}

// Store loads and saves snapshots through a backend. Calls are serialized.
type Store struct {
	backend      Backend
	timeProvider clock.TimeProvider
	logger       *zap.Logger

	mu sync.Mutex
}

// StoreConfig holds configuration for the store
type StoreConfig struct {
	Backend      Backend            // Required
	TimeProvider clock.TimeProvider // Optional
	Logger       *zap.Logger        // Optional
}

// Stats describes the stored document
type Stats struct {
	Available     bool           `json:"available"`
	Used          int            `json:"used"`
	UsedFormatted string         `json:"usedFormatted"`
	Counts        map[string]int `json:"counts"`
	LastSync      time.Time      `json:"lastSync"`
}

// NewStore creates a snapshot store
func NewStore(cfg *StoreConfig) *Store {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Backend == nil {
		panic("backend is required")
	}

	s := &Store{
		backend:      cfg.Backend,
		timeProvider: cfg.TimeProvider,
		logger:       cfg.Logger,
	}
	if s.timeProvider == nil {
		s.timeProvider = clock.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Load reads the stored snapshot, or the defaults when nothing was saved
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	data, err := s.backend.Read(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to read snapshot")
	}

	snap, migrated, err := Decode(data, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if migrated {
		s.logger.Warn("snapshot version mismatch, merged over defaults",
			zap.String("want_version", Version))
	}
	return snap, nil
}

// Save writes a snapshot, stamping its lastSync
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return dnderr.InvalidArgument("snapshot cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, snap)
}

func (s *Store) save(ctx context.Context, snap *Snapshot) error {
	now := s.timeProvider.Now()
	snap.LastSync = now
	snap.fillCollections()

	data, err := Encode(snap, now)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return dnderr.Wrap(err, "failed to write snapshot")
	}

	s.logger.Debug("snapshot saved", zap.Int("bytes", len(data)))
	return nil
}

// Update applies fn to the stored snapshot and saves the result
func (s *Store) Update(ctx context.Context, fn func(*Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	fn(snap)
	return s.save(ctx, snap)
}

// Clear removes the stored snapshot
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return dnderr.Wrap(err, "failed to clear snapshot")
	}
	s.logger.Info("snapshot cleared")
	return nil
}

// Stats reports the size and contents of the stored document
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Read(ctx)
	if err != nil {
		s.logger.Warn("snapshot backend unavailable", zap.Error(err))
		return &Stats{UsedFormatted: humanize.IBytes(0), Counts: map[string]int{}}, nil
	}

	snap, _, err := Decode(data, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	return &Stats{
		Available:     true,
		Used:          len(data),
		UsedFormatted: humanize.IBytes(uint64(len(data))),
		Counts:        snap.Counts(),
		LastSync:      snap.LastSync,
	}, nil
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}
