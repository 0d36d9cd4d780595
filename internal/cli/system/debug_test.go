package system

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return ctx, out
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("expected path %s, got %s", ctx.Store.GetConfigPath(), got["path"])
	}
}

func TestDebugDumpTaskCmd_Success(t *testing.T) {
	ctx, out := setupTestDB(t)

	task := models.Task{
		ID:        "test-task-id",
		Title:     "File taxes",
		DueDate:   "2024-04-15",
		Priority:  3,
		CreatedAt: "2024-03-01T09:00:00Z",
	}
	if err := ctx.Store.AddTask(ctx.Ctx(), task); err != nil {
		t.Fatalf("failed to add test task: %v", err)
	}

	if err := (&DebugDumpTaskCmd{ID: "test-task-id"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-task command failed: %v", err)
	}

	jsonStr := out.String()
	for _, field := range []string{`"id"`, `"title"`, `"due_date"`, `"priority"`, "File taxes"} {
		if !strings.Contains(jsonStr, field) {
			t.Errorf("JSON output missing %s:\n%s", field, jsonStr)
		}
	}
}

func TestDebugDumpTaskCmd_NotFound(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&DebugDumpTaskCmd{ID: "nonexistent-id"}).Run(ctx)
	if err == nil {
		t.Fatal("debug dump-task should fail for non-existent task")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestDebugDumpDayCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := ctx.Store.SaveMood(ctx.Ctx(), models.Mood{ID: "m1", Date: "2024-03-14", Rating: 4}); err != nil {
		t.Fatalf("failed to save mood: %v", err)
	}

	if err := (&DebugDumpDayCmd{Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-day command failed: %v", err)
	}

	var got struct {
		Record  models.DayRecord `json:"record"`
		Dropped int              `json:"dropped"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Record.Date != "2024-03-14" {
		t.Errorf("expected 2024-03-14, got %s", got.Record.Date)
	}
	if got.Record.Mood == nil || got.Record.Mood.Rating != 4 {
		t.Errorf("expected mood 4, got %+v", got.Record.Mood)
	}
	if got.Dropped != 0 {
		t.Errorf("expected no drops, got %d", got.Dropped)
	}
}

func TestDebugDumpDayCmd_InvalidDate(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&DebugDumpDayCmd{Date: "03/14/2024"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("expected 'invalid date' error, got: %v", err)
	}
}

func TestDebugDumpSettingsCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	ctx.Timezone = "Asia/Tokyo"

	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-settings command failed: %v", err)
	}

	var got models.Settings
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Timezone != "Asia/Tokyo" {
		t.Errorf("expected timezone override, got %s", got.Timezone)
	}
	if got.WeekStart == "" {
		t.Error("expected a default week start")
	}
}
