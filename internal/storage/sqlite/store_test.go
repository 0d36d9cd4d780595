package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	lderrors "github.com/julianstephens/lifedash/internal/errors"
)

func TestLoad_BeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, lderrors.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want %v", err, lderrors.ErrNotInitialized)
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lifedash.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()

	current, latest, err := reopened.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if current != latest || latest < 2 {
		t.Errorf("SchemaVersion() = %d, %d; want equal and at least 2", current, latest)
	}

	applied, err := reopened.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("Migrate() on current schema applied %d, want 0", applied)
	}
	if got := reopened.GetConfigPath(); got != path {
		t.Errorf("GetConfigPath() = %q, want %q", got, path)
	}
}

func TestInit_Idempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "lifedash.db"))
	defer store.Close()

	for i := 0; i < 2; i++ {
		if err := store.Init(); err != nil {
			t.Fatalf("Init() #%d failed: %v", i+1, err)
		}
	}
}

func TestLoad_SchemaBehind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifedash.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := store.DB().Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatalf("failed to rewind schema version: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	defer reopened.Close()
	if err := reopened.Load(); err == nil {
		t.Fatal("Load() with an outdated schema should fail")
	}

	fresh := NewStore(path)
	defer fresh.Close()
	applied, err := fresh.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("Migrate() applied %d, want 1", applied)
	}
}
