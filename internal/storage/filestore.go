package storage

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/maruel/unicorn/internal/item"
)

// FileStore reads and writes item records on the local file system.
//
// Record paths are used as given; the store has no root of its own because
// output and parent locations are resolved per file by the caller.
type FileStore struct{}

// NewFileStore returns a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// ItemExists reports whether a record file exists at path. Only a missing
// file counts as absent; other stat failures are returned.
func (fs *FileStore) ItemExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat item: %w", err)
	}
	return !info.IsDir(), nil
}

// ReadItem reads and parses the record at path.
func (fs *FileStore) ReadItem(path string) (*item.Item, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from the build configuration.
	if err != nil {
		return nil, fmt.Errorf("failed to read item: %w", err)
	}
	return item.ParseFrom(path, data)
}

// WriteItem formats it and writes it at path.
//
// The record is written to a temporary file in the destination directory and
// renamed over path, so readers never observe a partially written record.
func (fs *FileStore) WriteItem(path string, it *item.Item) error {
	data, err := item.Format(it)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// WriteFile atomically writes already formatted record data at path.
func (fs *FileStore) WriteFile(path string, data []byte) error {
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: serialization trees are shared with other tools.
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmp)
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write item: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write item: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write item: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write item: %w", err)
	}
	return nil
}
