package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiverson/life-calendar/internal/config"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/storage"
	"github.com/wiverson/life-calendar/internal/storage/memory"
)

func TestOpenStorageBackends(t *testing.T) {
	dir := t.TempDir()

	kv, err := openStorage(dir, config.StorageMemory)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, kv)

	kv, err = openStorage(dir, config.StorageFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(kv.Path(), dir))

	kv, err = openStorage(dir, config.StorageSQLite)
	require.NoError(t, err)
	require.NoError(t, kv.Set("k", "v"))
	require.NoError(t, kv.Close())
	assert.FileExists(t, filepath.Join(dir, "lifecal.db"))

	_, err = openStorage(dir, "floppy")
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestNewCalendarUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WeeksPerRow = 26
	cfg.Years = 4

	m, err := newCalendar(memory.New(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 26, m.GridOptions().WeeksPerRow)
	assert.Equal(t, 4, m.GridOptions().Rows)
}

func TestNewCalendarReportsCorruptState(t *testing.T) {
	kv := memory.NewWithValues(map[string]string{
		storage.KeyBirthday: "garbage",
		storage.KeyEvents:   "not json",
	})

	m, err := newCalendar(kv, config.DefaultConfig())
	require.NotNil(t, m)
	assert.ErrorIs(t, err, event.ErrCorruptState)

	var buf bytes.Buffer
	printWarnings(&buf, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "warning:"))
}

func TestStorageWarning(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, storageWarning(&buf, nil))
	assert.Empty(t, buf.String())

	assert.NoError(t, storageWarning(&buf, storage.Unavailable("saving", errors.New("disk full"))))
	assert.Contains(t, buf.String(), "disk full")

	other := errors.New("boom")
	assert.Equal(t, other, storageWarning(&buf, other))
}

func TestOpenEnvWithHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvStorage, "")
	prev := flagHome
	flagHome = dir
	t.Cleanup(func() { flagHome = prev })

	cmd, _, _ := newTestCmd()
	err := withEnv(cmd, func(env *appEnv) error {
		assert.Equal(t, dir, env.dir)
		assert.Equal(t, config.StorageFile, env.cfg.Storage)
		_, err := env.model.SubmitBirthday("2000-01-01")
		return err
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "storage.json"))
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvStorage, config.StorageSQLite)
	prev := flagHome
	t.Cleanup(func() {
		flagHome = prev
		rootCmd.SetArgs(nil)
	})

	run := func(args ...string) string {
		t.Helper()
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		rootCmd.SetArgs(append([]string{"--home", dir}, args...))
		require.NoError(t, rootCmd.Execute(), out.String())
		return out.String()
	}

	assert.Contains(t, run("init", "--birthday", "2000-01-01"), "Birthday set to")
	assert.Contains(t, run("event", "add", "--name", "Trip", "--start", "2000-01-10", "--end", "2000-01-20"), "Trip")
	assert.Contains(t, run("event", "list"), "Trip")
	assert.Contains(t, run("export", "--format", "json", "--output", "-"), `"birthday": "2000-01-01"`)
	assert.Contains(t, run("show", "--static", "--years", "2"), "Born Jan 1, 2000")
	assert.FileExists(t, filepath.Join(dir, "lifecal.db"))
}
