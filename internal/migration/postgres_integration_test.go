package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	_ "github.com/lib/pq"

	"github.com/julianstephens/lifedash/migrations"
)

// setupPostgresTestDB opens the database named by POSTGRES_TEST_URL.
// Example: POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS test_moods")
		db.Close()
	})
	return db
}

// TestPostgresApplyMigrations verifies the version row is written with $1 placeholders.
func TestPostgresApplyMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)

	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE test_moods (id TEXT PRIMARY KEY);")},
	}, WithDollarPlaceholders())

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 1 {
		t.Errorf("ApplyMigrations() applied = %d, want 1", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 1 {
		t.Errorf("GetCurrentVersion() = %d, want 1", version)
	}
}

func TestPostgresEmbeddedMigrationsParse(t *testing.T) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("fs.Sub() error = %v", err)
	}
	runner := NewRunner(nil, subFS, WithDollarPlaceholders())
	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion() error = %v", err)
	}
	if latest < 2 {
		t.Errorf("GetLatestVersion() = %d, want at least 2", latest)
	}
}
