package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists records to a single JSON file. Saves write a temp
// file in the same directory and rename it over the target, so readers
// never observe a partial file.
//
// FileStore is safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
	perm os.FileMode
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithPerm sets the file mode used for the store file.
func WithPerm(perm os.FileMode) Option {
	return func(s *FileStore) {
		s.perm = perm
	}
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path: path,
		perm: 0644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*FileStore)(nil)

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes all records, replacing whatever the file held before.
func (s *FileStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, s.perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set store file mode: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Load reads all records. A missing file is an empty store, not an
// error.
func (s *FileStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", s.path, err)
	}
	return records, nil
}
