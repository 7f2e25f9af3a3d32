package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/storage"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the same checks against every backend
type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	open    func(dir string) (storage.Backend, error)
	dir     string
	backend storage.Backend
	store   *storage.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()

	backend, err := s.open(s.dir)
	s.Require().NoError(err)
	s.backend = backend
	s.store = storage.NewStore(&storage.StoreConfig{
		Backend:      backend,
		TimeProvider: clock.Fixed(now),
	})
}

func (s *StoreTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(dir string) (storage.Backend, error) {
		return storage.NewFileBackend(filepath.Join(dir, "nested", "keeper.json"))
	}})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(dir string) (storage.Backend, error) {
		return storage.OpenSQLite(context.Background(), filepath.Join(dir, "keeper.db"))
	}})
}

func (s *StoreTestSuite) TestLoad_NothingSavedIsDefault() {
	snap, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(storage.Default(now), snap)
}

func (s *StoreTestSuite) TestSaveLoad() {
	snap := storage.Default(time.Time{})
	snap.Rules = append(snap.Rules, &rules.Rule{ID: "r1", Title: "Advantage", SystemID: "dnd5e", Tags: []string{}})
	s.Require().NoError(s.store.Save(s.ctx, snap))
	s.Equal(now, snap.LastSync)

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded.Rules, 1)
	s.Equal("Advantage", loaded.Rules[0].Title)
	s.Equal(now, loaded.LastSync)
}

func (s *StoreTestSuite) TestUpdate_ReadModifyWrite() {
	s.Require().NoError(s.store.Save(s.ctx, storage.Default(now)))

	s.Require().NoError(s.store.Update(s.ctx, func(snap *storage.Snapshot) {
		snap.SelectedSystem = "pathfinder2e"
	}))
	s.Require().NoError(s.store.Update(s.ctx, func(snap *storage.Snapshot) {
		snap.UserPreferences.Theme = "light"
	}))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal("pathfinder2e", loaded.SelectedSystem)
	s.Equal("light", loaded.UserPreferences.Theme)
}

func (s *StoreTestSuite) TestClearAndStats() {
	stats, err := s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, stats.Used)

	s.Require().NoError(s.store.Save(s.ctx, storage.Default(now)))
	stats, err = s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.True(stats.Available)
	s.Positive(stats.Used)
	s.NotEmpty(stats.UsedFormatted)
	s.Equal(0, stats.Counts["characters"])

	s.Require().NoError(s.store.Clear(s.ctx))
	s.Require().NoError(s.store.Clear(s.ctx))
	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(storage.Default(now), loaded)
}

func TestFileBackend_RequiresPath(t *testing.T) {
	_, err := storage.NewFileBackend(" ")
	if err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestFileBackend_LeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(filepath.Join(dir, "keeper.json"))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	if err := backend.Write(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
}

func TestOpenSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keeper.db")

	first, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Write(ctx, []byte(`{"version":"1.0.0","data":{}}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	data, err := second.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"version":"1.0.0","data":{}}` {
		t.Fatalf("payload = %s", data)
	}
}
