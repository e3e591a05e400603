// Package memory provides an in-memory storage.KV for tests and ephemeral runs.
package memory

import (
	"fmt"
	"sync"

	"github.com/wiverson/life-calendar/internal/storage"
)

// Ensure Store implements the interface.
var _ storage.KV = (*Store)(nil)

// Store is an in-memory storage.KV.
type Store struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes every Set and Delete fail with storage.ErrUnavailable.
	FailWrites bool

	// FailReads makes the next FailReads calls to Get fail with
	// storage.ErrUnavailable.
	FailReads int
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewWithValues creates a store pre-populated with values.
func NewWithValues(values map[string]string) *Store {
	s := New()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads > 0 {
		s.FailReads--
		return "", false, fmt.Errorf("reading %q: %w", key, storage.ErrUnavailable)
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("writing %q: %w", key, storage.ErrUnavailable)
	}
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("deleting %q: %w", key, storage.ErrUnavailable)
	}
	delete(s.values, key)
	return nil
}

// Path returns ":memory:".
func (s *Store) Path() string {
	return ":memory:"
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
