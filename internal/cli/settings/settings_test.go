package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	return ctx, out
}

func strPtr(s string) *string {
	return &s
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Timezone:   Local", "Week Start: sunday"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &SettingsCmd{Timezone: strPtr("America/New_York"), WeekStart: strPtr("Monday")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != "America/New_York" {
		t.Errorf("expected timezone America/New_York, got %s", settings.Timezone)
	}
	if settings.WeekStart != "monday" {
		t.Errorf("expected week start monday, got %s", settings.WeekStart)
	}
}

func TestSettingsCmd_PartialUpdateKeepsOthers(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&SettingsCmd{WeekStart: strPtr("monday")}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("timezone should be unchanged, got %s", settings.Timezone)
	}
}

func TestSettingsCmd_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"unknown timezone", SettingsCmd{Timezone: strPtr("Mars/Olympus_Mons")}},
		{"bad week start", SettingsCmd{WeekStart: strPtr("wednesday")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}

			settings, err := ctx.Store.GetSettings(ctx.Ctx())
			if err != nil {
				t.Fatal(err)
			}
			if settings.Timezone != "Local" || settings.WeekStart != "sunday" {
				t.Errorf("settings changed after a rejected update: %+v", settings)
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
