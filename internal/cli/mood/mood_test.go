package mood

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifedash/internal/analytics"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/storage/memory"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	ctx := cli.NewContext(memory.New())
	ctx.Out = out
	ctx.Timezone = "UTC"
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC) }
	return ctx, out
}

func TestMoodLogCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&MoodLogCmd{Rating: 4, Note: "sunny"}).Run(ctx); err != nil {
		t.Fatalf("mood log failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged mood 4/5 for 2024-03-15") {
		t.Errorf("unexpected output: %s", out.String())
	}

	// logging the same day again replaces the entry
	if err := (&MoodLogCmd{Rating: 2, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("second mood log failed: %v", err)
	}
	moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 1 || moods[0].Rating != 2 {
		t.Errorf("expected a single replaced mood, got %+v", moods)
	}
}

func TestMoodLogCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&MoodLogCmd{}).Validate(); err == nil {
		t.Error("expected a missing rating to fail validation")
	}
	if err := (&MoodLogCmd{Interactive: true}).Validate(); err != nil {
		t.Errorf("interactive mode should not need a rating: %v", err)
	}

	tests := []struct {
		name string
		cmd  MoodLogCmd
	}{
		{"rating too high", MoodLogCmd{Rating: 6}},
		{"rating too low", MoodLogCmd{Rating: -1}},
		{"bad date", MoodLogCmd{Rating: 3, Date: "15/03/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMoodDeleteCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&MoodLogCmd{Rating: 3, Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&MoodDeleteCmd{Date: "2024-03-14"}).Run(ctx); err != nil {
		t.Fatalf("mood delete failed: %v", err)
	}
	err := (&MoodDeleteCmd{Date: "2024-03-14"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "no mood recorded") {
		t.Errorf("expected 'no mood recorded', got %v", err)
	}
}

func TestMoodTrendCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	for i, rating := range []int{2, 3, 4} {
		date := time.Date(2024, 3, 10+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if err := (&MoodLogCmd{Rating: rating, Date: date}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := (&MoodTrendCmd{}).Run(ctx); err != nil {
		t.Fatalf("mood trend failed: %v", err)
	}
	if !strings.Contains(out.String(), "Trend: improving (2.00 → 4.00 over 3 entries)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := (&MoodTrendCmd{From: "2024-03-11", To: "2024-03-12", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("mood trend --json failed: %v", err)
	}
	var points []analytics.MoodTrendPoint
	if err := json.Unmarshal(out.Bytes(), &points); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(points) != 2 || points[0].Date != "2024-03-11" {
		t.Errorf("unexpected points: %+v", points)
	}
}

func TestMoodTrendCmd_Empty(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&MoodTrendCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No moods recorded.") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if err := (&MoodTrendCmd{From: "March"}).Run(ctx); err == nil {
		t.Error("expected a bad --from to fail")
	}
}
