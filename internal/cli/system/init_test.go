package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifedash/internal/backup"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/memory"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.NewContext(store)
	ctx.Out = &bytes.Buffer{}
	return ctx, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(ctx.Out.(*bytes.Buffer).String(), dbPath) {
		t.Errorf("expected output to name the database path")
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := ctx.Store.SaveMood(ctx.Ctx(), models.Mood{ID: "m1", Date: "2024-03-01", Rating: 3}); err != nil {
		t.Fatalf("failed to save mood: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed (should be idempotent): %v", err)
	}

	moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 1 {
		t.Errorf("expected data to survive a second init, got %d moods", len(moods))
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if err := ctx.Store.SaveMood(ctx.Ctx(), models.Mood{ID: "m1", Date: "2024-03-01", Rating: 3}); err != nil {
		t.Fatalf("failed to save mood: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 0 {
		t.Errorf("expected a fresh database, got %d moods", len(moods))
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected a snapshot before the reset, got %d", len(backups))
	}
}

func TestInitCmd_ForceWithoutExistingDB(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init on a new path failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

func TestInitCmd_ForceRejectsNonSQLite(t *testing.T) {
	ctx := cli.NewContext(memory.New())
	ctx.Out = &bytes.Buffer{}

	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("expected --force to be rejected for non-SQLite storage")
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

