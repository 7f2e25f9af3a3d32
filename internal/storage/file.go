package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

// FileBackend keeps the envelope in a single JSON file. Writes go through a
// temporary file and a rename so a crash never leaves half a document.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to path
func NewFileBackend(path string) (*FileBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, dnderr.InvalidArgument("snapshot path is required")
	}
	return &FileBackend{path: filepath.Clean(path)}, nil
}

func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to read snapshot file").
			WithMeta("path", b.path)
	}
	return data, nil
}

func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dnderr.Wrap(err, "failed to create snapshot directory").
			WithMeta("path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return dnderr.Wrap(err, "failed to create temporary snapshot file").
			WithMeta("path", b.path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return dnderr.Wrap(err, "failed to write snapshot file").
			WithMeta("path", b.path)
	}
	if err := tmp.Close(); err != nil {
		return dnderr.Wrap(err, "failed to close snapshot file").
			WithMeta("path", b.path)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return dnderr.Wrap(err, "failed to replace snapshot file").
			WithMeta("path", b.path)
	}
	return nil
}

func (b *FileBackend) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return dnderr.Wrap(err, "failed to remove snapshot file").
			WithMeta("path", b.path)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
