// Package config loads and saves lifecal settings. Settings live in
// config.toml inside the data directory; a .env file in the working
// directory and LIFECAL_* environment variables override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file inside the data directory.
const FileName = "config.toml"

// Environment variables read by lifecal.
const (
	EnvHome    = "LIFECAL_HOME"
	EnvStorage = "LIFECAL_STORAGE"
	EnvListen  = "LIFECAL_LISTEN"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

const (
	defaultStorage     = StorageFile
	defaultWeeksPerRow = 52
	defaultYears       = 100
	defaultColor       = "#4a90d9"
	defaultListen      = "127.0.0.1:8080"
)

// Upper bounds for the grid size.
const (
	MaxWeeksPerRow = 104
	MaxYears       = 150
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config is the persisted lifecal configuration.
type Config struct {
	// Storage selects the backend: file, sqlite or memory.
	Storage string `toml:"storage"`
	// WeeksPerRow is the number of weeks in one grid row.
	WeeksPerRow int `toml:"weeks_per_row"`
	// Years is the number of grid rows.
	Years int `toml:"years"`
	// DefaultColor is used for events saved without a color.
	DefaultColor string `toml:"default_color"`
	// Listen is the address used by `lifecal serve`.
	Listen string `toml:"listen"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage:      defaultStorage,
		WeeksPerRow:  defaultWeeksPerRow,
		Years:        defaultYears,
		DefaultColor: defaultColor,
		Listen:       defaultListen,
	}
}

// Normalize replaces missing or invalid values with defaults.
func (c *Config) Normalize() {
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		c.Storage = defaultStorage
	}
	if c.WeeksPerRow <= 0 || c.WeeksPerRow > MaxWeeksPerRow {
		c.WeeksPerRow = defaultWeeksPerRow
	}
	if c.Years <= 0 || c.Years > MaxYears {
		c.Years = defaultYears
	}
	if !hexColor.MatchString(c.DefaultColor) {
		c.DefaultColor = defaultColor
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
}

// LoadEnv reads a .env file from the working directory into the process
// environment. A missing file is not an error; variables already set win.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Dir resolves the data directory: override first, then LIFECAL_HOME, then
// ~/.lifecal.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lifecal"), nil
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads dir/config.toml. A missing file yields the defaults. LIFECAL_STORAGE
// and LIFECAL_LISTEN override the file.
func Load(dir string) (*Config, error) {
	cfg, err := ReadFile(dir)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
	cfg.Normalize()
	return cfg, nil
}

// ReadFile reads dir/config.toml without environment overrides.
func ReadFile(dir string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(dir), err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to dir/config.toml atomically with 0600 permissions.
func Save(dir string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), Path(dir))
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value and assigns it to key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, strings.TrimSpace(value))
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"storage": {
		get: func(c *Config) string { return c.Storage },
		set: func(c *Config, v string) error {
			switch v {
			case StorageFile, StorageSQLite, StorageMemory:
				c.Storage = v
				return nil
			}
			return fmt.Errorf("storage must be one of %s, %s, %s", StorageFile, StorageSQLite, StorageMemory)
		},
	},
	"weeks_per_row": {
		get: func(c *Config) string { return strconv.Itoa(c.WeeksPerRow) },
		set: func(c *Config, v string) error {
			n, err := bounded(v, MaxWeeksPerRow)
			if err == nil {
				c.WeeksPerRow = n
			}
			return err
		},
	},
	"years": {
		get: func(c *Config) string { return strconv.Itoa(c.Years) },
		set: func(c *Config, v string) error {
			n, err := bounded(v, MaxYears)
			if err == nil {
				c.Years = n
			}
			return err
		},
	},
	"default_color": {
		get: func(c *Config) string { return c.DefaultColor },
		set: func(c *Config, v string) error {
			if !hexColor.MatchString(v) {
				return fmt.Errorf("default_color must be a hex color like #4a90d9, got %q", v)
			}
			c.DefaultColor = v
			return nil
		},
	},
	"listen": {
		get: func(c *Config) string { return c.Listen },
		set: func(c *Config, v string) error {
			if v == "" {
				return errors.New("listen must not be empty")
			}
			c.Listen = v
			return nil
		},
	},
}

func bounded(v string, limit int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > limit {
		return 0, fmt.Errorf("expected an integer from 1 to %d, got %q", limit, v)
	}
	return n, nil
}
