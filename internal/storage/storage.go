// Package storage defines the string-valued key/value persistence used by
// lifecal. Implementations live in the file, sqlite and memory subpackages.
package storage

import (
	"errors"
	"fmt"
)

// Keys written by lifecal.
const (
	KeyBirthday = "birthday"
	KeyEvents   = "events"
)

// ErrUnavailable indicates the backing store rejected a read or write
// (disk full, permissions, database locked).
var ErrUnavailable = errors.New("storage unavailable")

// ErrCorrupt indicates the backing store was read but its contents could
// not be parsed. Unlike ErrUnavailable, retrying will not help.
var ErrCorrupt = errors.New("stored data unreadable")

// KV is a synchronous string key/value store. A missing key is reported as
// ("", false, nil), never as an error.
type KV interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Path describes where the data lives.
	Path() string

	// Close releases any underlying resources.
	Close() error
}

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
// Errors that already wrap ErrUnavailable are only annotated with op.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}
