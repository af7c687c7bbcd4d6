package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileKV stores each key as a JSON file in a directory.
// Files are spread over subdirectories named after the first two hex
// characters of the key hash.
type FileKV struct {
	mu  sync.RWMutex
	dir string
}

// NewFileKV creates a file-backed KV in dir.
// The directory will be created if it doesn't exist.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// fileEntry wraps a stored value with metadata.
type fileEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get retrieves a value. A missing file is a miss; an unreadable or
// corrupted file is reported as an error.
func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false, fmt.Errorf("parse %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set stores a value. The file is written to a temporary name and renamed
// so readers never see a partial entry.
func (f *FileKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(fileEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Close does nothing for the file store.
func (f *FileKV) Close() error {
	return nil
}

// Dir returns the base directory.
func (f *FileKV) Dir() string {
	return f.dir
}

// path converts a key to a file path.
func (f *FileKV) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(f.dir, hash[:2], hash[2:]+".json")
}

var _ KV = (*FileKV)(nil)
