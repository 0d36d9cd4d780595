package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifedash/internal/backup"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/memory"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	return ctx, out
}

func saveMood(t *testing.T, ctx *cli.Context, date string, rating int) {
	t.Helper()
	if err := ctx.Store.SaveMood(ctx.Ctx(), models.Mood{ID: "mood-" + date, Date: date, Rating: rating}); err != nil {
		t.Fatalf("failed to save mood: %v", err)
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: lifedash-") {
		t.Errorf("unexpected create output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestBackupRestore_LatestWithYes(t *testing.T) {
	ctx, out := setupTestDB(t)
	saveMood(t, ctx, "2024-03-01", 4)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	saveMood(t, ctx, "2024-03-02", 1)

	if err := (&BackupRestoreCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Previous database saved as:") {
		t.Errorf("expected the pre-restore snapshot to be reported:\n%s", out.String())
	}

	moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
	if err != nil {
		t.Fatalf("store unusable after restore: %v", err)
	}
	if len(moods) != 1 || moods[0].Date != "2024-03-01" {
		t.Errorf("expected only the backed up mood, got %+v", moods)
	}
}

func TestBackupRestore_Cancelled(t *testing.T) {
	ctx, out := setupTestDB(t)
	saveMood(t, ctx, "2024-03-01", 4)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	saveMood(t, ctx, "2024-03-02", 1)

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("expected cancellation:\n%s", out.String())
	}

	moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 2 {
		t.Errorf("expected the database untouched, got %d moods", len(moods))
	}
}

func TestBackupRestore_ByName(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	store := ctx.Store.(*sqlite.Store)
	latest, ok, err := backup.NewManager(store.GetConfigPath()).Latest()
	if err != nil || !ok {
		t.Fatalf("expected a backup, ok=%v err=%v", ok, err)
	}

	if err := (&BackupRestoreCmd{BackupFile: latest.Name(), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore by name failed: %v", err)
	}
}

func TestBackupRestore_Missing(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&BackupRestoreCmd{Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "no backups found") {
		t.Errorf("expected 'no backups found', got %v", err)
	}

	err = (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found', got %v", err)
	}
}

func TestBackupCommands_RequireSQLite(t *testing.T) {
	ctx := cli.NewContext(memory.New())
	ctx.Out = &bytes.Buffer{}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected create to fail for non-SQLite storage")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("expected list to fail for non-SQLite storage")
	}
}
