// Package store persists the task tree as a single blob and migrates
// legacy data shapes on load.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a single-key blob store. Load returns nil with no error when
// nothing has been saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(blob []byte) error
	Close() error
}

// FileStore keeps the blob in one JSON file on disk.
type FileStore struct {
	Path string
}

// NewFileStore returns a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file, or returns nil when it does not exist yet.
func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return data, nil
}

// Save replaces the file contents.
func (f *FileStore) Save(blob []byte) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, blob, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Close is a no-op for file stores.
func (f *FileStore) Close() error { return nil }
