package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/config"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/storage"
	"github.com/wiverson/life-calendar/internal/storage/file"
	"github.com/wiverson/life-calendar/internal/storage/memory"
	"github.com/wiverson/life-calendar/internal/storage/sqlite"
)

// appEnv holds what a command needs to work on the calendar.
type appEnv struct {
	dir   string
	cfg   *config.Config
	kv    storage.KV
	model *calendar.Model
}

// openEnv resolves the data directory, loads the config, opens the
// configured storage backend and loads the calendar from it. Load problems
// that leave a usable calendar are printed as warnings.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	dir, err := config.Dir(flagHome)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	backend := cfg.Storage
	if flagEphemeral {
		backend = config.StorageMemory
	}
	kv, err := openStorage(dir, backend)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", "backend", backend, "path", kv.Path())

	model, err := newCalendar(kv, cfg)
	if err != nil {
		printWarnings(cmd.ErrOrStderr(), err)
	}

	return &appEnv{dir: dir, cfg: cfg, kv: kv, model: model}, nil
}

// Close releases the storage backend.
func (e *appEnv) Close() error {
	return e.kv.Close()
}

// openStorage opens the named backend inside dir.
func openStorage(dir, backend string) (storage.KV, error) {
	switch backend {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageSQLite:
		db, err := sqlite.New(dir)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.StorageFile, "":
		return file.New(dir), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// newCalendar loads the calendar from kv using the grid settings in cfg.
// The model is always usable; the error only describes discarded or
// unreadable state.
func newCalendar(kv storage.KV, cfg *config.Config) (*calendar.Model, error) {
	return calendar.New(kv, calendar.Options{
		Grid: calendar.GridOptions{
			WeeksPerRow: cfg.WeeksPerRow,
			Rows:        cfg.Years,
		},
		DefaultColor: cfg.DefaultColor,
	})
}

// printWarnings prints every error joined in err as a warning line.
func printWarnings(w io.Writer, err error) {
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		_, _ = fmt.Fprintln(w, Warning("warning: "+e.Error()))
	}
}

// storageWarning turns a storage failure after a successful in-memory
// change into a printed warning. Other errors are returned unchanged.
func storageWarning(w io.Writer, err error) error {
	if err == nil || !errors.Is(err, storage.ErrUnavailable) {
		return err
	}
	_, _ = fmt.Fprintln(w, Warning("warning: change not saved: "+err.Error()))
	return nil
}

// withEnv opens the environment, runs fn and closes the storage.
func withEnv(cmd *cobra.Command, fn func(env *appEnv) error) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil {
			logger.Warn("closing storage", "err", cerr)
		}
	}()
	return fn(env)
}
