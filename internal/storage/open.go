package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/keyring"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/storage/memory"
	"github.com/julianstephens/lifedash/internal/storage/postgres"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

// IsPostgres reports whether config is a PostgreSQL connection URL.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// Open resolves a --config value to a store without connecting to it.
//
// LIFEDASH_DB_CONNECTION takes precedence over config. "keyring" reads the
// PostgreSQL connection string from the OS keyring. Connection URLs given on
// the command line must not embed a password. A path ending in .json selects
// the JSON file store; anything else is a SQLite database path.
func Open(config string) (Provider, error) {
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
		return postgres.New(env), nil
	}

	switch {
	case config == constants.KeyringConfigValue:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("reading connection string from keyring: %w", err)
		}
		return postgres.New(connStr), nil
	case IsPostgres(config):
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return memory.NewFileStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
