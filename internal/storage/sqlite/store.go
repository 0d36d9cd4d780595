package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/migration"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/sqlstore"
	"github.com/julianstephens/lifedash/migrations"
)

// Store keeps every record in a single SQLite file.
type Store struct {
	*sqlstore.Store
	path string
}

func NewStore(path string) *Store {
	return &Store{
		Store: sqlstore.New(sqlstore.DialectSQLite),
		path:  path,
	}
}

func (s *Store) dsn() string {
	return s.path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.DB() == nil {
		db, err := sql.Open("sqlite", s.dsn())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.Attach(db)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Persist defaults so later reads see a complete settings table
	settings, err := s.GetSettings(context.Background())
	if err != nil {
		settings = models.Settings{}
		models.ApplyDefaultSettings(&settings)
	}
	if err := s.SaveSettings(context.Background(), settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.DB() != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return errors.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.Attach(db)

	r, err := s.runner()
	if err == nil {
		err = r.ValidateVersion()
	}
	if err != nil {
		s.DB().Close()
		s.Attach(nil)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	db := s.DB()
	if db == nil {
		return nil
	}
	s.Attach(nil)
	return db.Close()
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.DB(), subFS), nil
}

func (s *Store) runMigrations() error {
	_, err := s.Migrate(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// Migrate applies pending migrations to an existing database without
// requiring its schema to be current first.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.DB() == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return 0, errors.ErrNotInitialized
		}
		db, err := sql.Open("sqlite", s.dsn())
		if err != nil {
			return 0, fmt.Errorf("failed to open database: %w", err)
		}
		s.Attach(db)
	}
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.ApplyMigrations(logFn)
}

// SchemaVersion reports the applied and newest embedded schema versions.
func (s *Store) SchemaVersion() (int, int, error) {
	if s.DB() == nil {
		return 0, 0, errors.ErrNotInitialized
	}
	r, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, 0, err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}
