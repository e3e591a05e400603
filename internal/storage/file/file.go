// Package file provides a storage.KV backed by a single JSON object on disk.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/wiverson/life-calendar/internal/storage"
)

// FileName is the name of the storage file inside the data directory.
const FileName = "storage.json"

// Ensure Store implements the interface.
var _ storage.KV = (*Store)(nil)

// Store keeps every key in one JSON object file. Writes go to a temp file
// in the same directory and are renamed into place.
type Store struct {
	mu       sync.Mutex
	path     string
	readFile func(name string) ([]byte, error)
}

// New creates a store rooted at dataDir. Nothing is written until the
// first Set.
func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, FileName), readFile: os.ReadFile}
}

// Get returns the value stored under key. A missing file means an empty
// store.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key. A file that no longer parses is replaced; a
// file that cannot be read is left alone and the error returned.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

// Delete removes key. Deleting from a missing file is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		values = map[string]string{}
	case err != nil:
		return err
	default:
		if _, ok := values[key]; !ok {
			return nil
		}
	}
	delete(values, key)
	return s.write(values)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op; every write is flushed immediately.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := s.readFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", s.path, err, storage.ErrCorrupt)
	}
	return values, nil
}

// readForWrite is read, except that an unparsable file counts as empty so
// the next write replaces it.
func (s *Store) readForWrite() (map[string]string, error) {
	values, err := s.read()
	if errors.Is(err, storage.ErrCorrupt) {
		return map[string]string{}, nil
	}
	return values, err
}

func (s *Store) write(values map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %v: %w", dir, err, storage.ErrUnavailable)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, storage.ErrUnavailable)
	}
	return nil
}
