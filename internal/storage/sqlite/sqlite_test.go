package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiverson/life-calendar/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s, dir
}

func TestNewCreatesDatabase(t *testing.T) {
	s, dir := setupTestStore(t)
	assert.Equal(t, filepath.Join(dir, FileName), s.Path())

	var version int
	require.NoError(t, s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestSetGetDelete(t *testing.T) {
	s, _ := setupTestStore(t)

	_, ok, err := s.Get(storage.KeyEvents)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(storage.KeyEvents, "[]"))
	require.NoError(t, s.Set(storage.KeyEvents, `[{"id":1}]`))

	v, ok, err := s.Get(storage.KeyEvents)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Delete(storage.KeyEvents))
	require.NoError(t, s.Delete(storage.KeyEvents))

	_, ok, err = s.Get(storage.KeyEvents)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.KeyBirthday, "2000-01-01T00:00:00.000Z"))
	require.NoError(t, s.Close())

	s, err = New(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(storage.KeyBirthday)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2000-01-01T00:00:00.000Z", v)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set("k", "v"), storage.ErrUnavailable)
	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
