// Package config reads and writes the habitgrid TOML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/keyring"
	"github.com/julianstephens/habitgrid/internal/storage"
	"github.com/julianstephens/habitgrid/internal/utils"
)

const fileName = "config.toml"

type Config struct {
	// Backend is one of json, sqlite or postgres
	Backend string `toml:"backend"`
	// DataPath is the data file for json and sqlite, or a PostgreSQL
	// connection string without credentials
	DataPath  string          `toml:"data_path"`
	Timezone  string          `toml:"timezone"`
	Debug     bool            `toml:"debug"`
	Reminders RemindersConfig `toml:"reminders"`
}

type RemindersConfig struct {
	Enabled bool `toml:"enabled"`
	// LogOnly skips the tray app and only writes reminders to the log
	LogOnly bool `toml:"log_only"`
}

var keyringLookup = keyring.GetConnectionString

func DefaultConfig() *Config {
	return &Config{
		Backend:   constants.BackendSQLite,
		DataPath:  filepath.Join(constants.DefaultConfigDir, "habitgrid.db"),
		Timezone:  "Local",
		Reminders: RemindersConfig{Enabled: true},
	}
}

// Dir returns the expanded config directory.
func Dir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the config at path, writing a default one first if none
// exists. Paths in the result are expanded.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	} else if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.Backend != constants.BackendPostgres {
		cfg.DataPath = ExpandPath(cfg.DataPath)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the backend name and timezone.
func (c *Config) Validate() error {
	switch c.Backend {
	case constants.BackendJSON, constants.BackendSQLite, constants.BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or postgres)", c.Backend)
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	// Passwords belong in the environment, the keyring or .pgpass
	if c.Backend == constants.BackendPostgres && c.DataPath != "" {
		if err := storage.ValidateConnString(c.DataPath); err != nil {
			return fmt.Errorf("data_path: %w", err)
		}
	}
	return nil
}

// StorageLocation returns where the configured backend keeps its data. For
// postgres the connection string comes from the environment, then the
// config file, then the OS keyring.
func (c *Config) StorageLocation() (string, error) {
	if c.Backend != constants.BackendPostgres {
		if c.DataPath == "" {
			return "", errors.New("data_path is not set")
		}
		return ExpandPath(c.DataPath), nil
	}

	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, nil
	}
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	connStr, err := keyringLookup()
	if err != nil {
		return "", fmt.Errorf("no PostgreSQL connection configured (set %s, data_path or the keyring): %w", constants.EnvDBConnection, err)
	}
	return connStr, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
