package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/storage/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps the envelope in a single row of a SQLite database
type SQLiteBackend struct {
	db           *sql.DB
	timeProvider clock.TimeProvider
}

// OpenSQLite opens the database at path and applies the embedded migrations
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, dnderr.InvalidArgument("snapshot path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to open sqlite database").
			WithMeta("path", path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to ping sqlite database").
			WithMeta("path", path)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to run migrations").
			WithMeta("path", path)
	}

	return &SQLiteBackend{db: db, timeProvider: clock.New()}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to read snapshot row")
	}
	return payload, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, data []byte) error {
	var head struct {
		Version string `json:"version"`
	}
	_ = json.Unmarshal(data, &head)

	_, err := b.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, version, payload, saved_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   version = excluded.version,
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		head.Version, data, b.timeProvider.Now().UnixMilli(),
	)
	if err != nil {
		return dnderr.Wrap(err, "failed to write snapshot row")
	}
	return nil
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return dnderr.Wrap(err, "failed to clear snapshot row")
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
