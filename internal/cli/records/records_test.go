package records

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/memory"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	ctx := cli.NewContext(memory.New())
	ctx.Out = out
	ctx.Timezone = "UTC"
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }
	return ctx, out
}

func day(t *testing.T, ctx *cli.Context, date string) *models.DayRecord {
	t.Helper()
	days, err := ctx.Aggregator.BuildCalendarMap(ctx.Ctx(), date, date)
	if err != nil {
		t.Fatalf("failed to build %s: %v", date, err)
	}
	return days[date]
}

type runner interface {
	Run(ctx *cli.Context) error
}

type validator interface {
	Validate() error
}

func run(ctx *cli.Context, cmd runner) error {
	if v, ok := cmd.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return cmd.Run(ctx)
}

func TestRecordCommandsLandOnTheirDay(t *testing.T) {
	ctx, _ := setupTestContext(t)
	rating := 8.5

	cmds := []runner{
		&EventAddCmd{Title: "Dentist", Start: "14:00", End: "15:00"},
		&MediaAddCmd{Title: "Dune", Type: "BOOK", Genres: "sci-fi, classic", Rating: &rating},
		&ActivityAddCmd{Type: "run", Duration: 30, Distance: 5.2, At: "07:15"},
		&ParkAddCmd{Name: "Yosemite"},
		&JournalAddCmd{Title: "Spring", Content: "First warm day", Tags: "weather"},
		&GithubAddCmd{Type: "Push", Repo: "me/lifedash", Title: "fix grid"},
		&RelationshipAddCmd{Type: "gift", Title: "Flowers"},
		&MealAddCmd{Type: "Lunch", Name: "Ramen", Calories: 650},
		&DuolingoMarkCmd{XP: 20},
	}
	for _, cmd := range cmds {
		if err := run(ctx, cmd); err != nil {
			t.Fatalf("%T failed: %v", cmd, err)
		}
	}

	rec := day(t, ctx, "2024-03-15")
	counts := map[string]int{
		"events":        len(rec.Events),
		"media":         len(rec.Media),
		"activities":    len(rec.Activities),
		"parks":         len(rec.Parks),
		"journals":      len(rec.Journals),
		"github":        len(rec.GithubEvents),
		"relationships": len(rec.RelationshipItems),
		"meals":         len(rec.DailyMeals),
	}
	for domain, n := range counts {
		if n != 1 {
			t.Errorf("expected 1 %s record on 2024-03-15, got %d", domain, n)
		}
	}
	if rec.Duolingo == nil || !rec.Duolingo.Completed || rec.Duolingo.XP != 20 {
		t.Errorf("unexpected duolingo day: %+v", rec.Duolingo)
	}

	if got := rec.Media[0]; got.Type != "book" || len(got.Genres) != 2 || got.Genres[1] != "classic" {
		t.Errorf("unexpected media item: %+v", got)
	}
	if got := rec.Activities[0]; got.StartTime != "2024-03-15T07:15:00Z" || got.Title != "run" {
		t.Errorf("unexpected activity: %+v", got)
	}
	if got := rec.Events[0]; got.AllDay || got.StartTime != "14:00" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got := rec.GithubEvents[0]; got.Type != "push" || got.CreatedAt != "2024-03-15T09:30:00Z" {
		t.Errorf("unexpected github event: %+v", got)
	}
}

func TestActivityUsesLocalDate(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Timezone = "America/New_York"

	if err := run(ctx, &ActivityAddCmd{Type: "walk", Date: "2024-03-14", At: "23:30"}); err != nil {
		t.Fatal(err)
	}

	rec := day(t, ctx, "2024-03-14")
	if len(rec.Activities) != 1 {
		t.Fatalf("expected the late walk on 2024-03-14, got %d activities", len(rec.Activities))
	}
	if got := rec.Activities[0].StartTime; got != "2024-03-14T23:30:00-04:00" {
		t.Errorf("unexpected start time %s", got)
	}
}

func TestMultiDayEventSpansRange(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := run(ctx, &EventAddCmd{Title: "Conference", Date: "2024-03-14", EndDate: "2024-03-16"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "2024-03-14 to 2024-03-16") {
		t.Errorf("unexpected output: %s", out.String())
	}

	days, err := ctx.Aggregator.BuildCalendarMap(ctx.Ctx(), "2024-03-13", "2024-03-17")
	if err != nil {
		t.Fatal(err)
	}
	for date, want := range map[string]int{"2024-03-13": 0, "2024-03-14": 1, "2024-03-15": 1, "2024-03-16": 1, "2024-03-17": 0} {
		if got := len(days[date].Events); got != want {
			t.Errorf("%s: expected %d events, got %d", date, want, got)
		}
	}
}

func TestRecordCommandValidation(t *testing.T) {
	ctx, _ := setupTestContext(t)
	badRating := 11.0

	tests := []struct {
		name string
		cmd  runner
	}{
		{"event end before start", &EventAddCmd{Title: "x", Start: "15:00", End: "14:00"}},
		{"event end without start", &EventAddCmd{Title: "x", End: "14:00"}},
		{"event end date before date", &EventAddCmd{Title: "x", Date: "2024-03-10", EndDate: "2024-03-09"}},
		{"event bad clock", &EventAddCmd{Title: "x", Start: "2pm"}},
		{"media unknown type", &MediaAddCmd{Title: "x", Type: "comic"}},
		{"media rating", &MediaAddCmd{Title: "x", Type: "movie", Rating: &badRating}},
		{"activity negative distance", &ActivityAddCmd{Type: "run", Distance: -1}},
		{"activity bad clock", &ActivityAddCmd{Type: "run", At: "7am"}},
		{"park blank", &ParkAddCmd{Name: " "}},
		{"github bad repo", &GithubAddCmd{Type: "push", Repo: "lifedash"}},
		{"relationship type", &RelationshipAddCmd{Type: "argument", Title: "x"}},
		{"meal type", &MealAddCmd{Type: "brunch", Name: "eggs"}},
		{"meal calories", &MealAddCmd{Type: "lunch", Name: "eggs", Calories: -5}},
		{"duolingo xp", &DuolingoMarkCmd{XP: -1}},
		{"bad date", &ParkAddCmd{Name: "x", Date: "tomorrow-ish"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(ctx, tt.cmd); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGoalLifecycle(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := run(ctx, &GoalAddCmd{Title: "Run a marathon", Target: "2024-10-01"}); err != nil {
		t.Fatal(err)
	}
	id := strings.TrimSuffix(out.String()[strings.Index(out.String(), "ID: ")+4:], ")\n")

	for _, title := range []string{"10k", "Half marathon"} {
		if err := run(ctx, &MilestoneAddCmd{GoalID: id, Title: title}); err != nil {
			t.Fatalf("milestone add failed: %v", err)
		}
	}
	if err := run(ctx, &MilestoneAddCmd{GoalID: "missing", Title: "x"}); err == nil {
		t.Error("expected milestone on unknown goal to fail")
	}

	if err := run(ctx, &GoalDoneCmd{ID: id, Date: "yesterday"}); err != nil {
		t.Fatalf("goal done failed: %v", err)
	}
	if rec := day(t, ctx, "2024-03-14"); len(rec.GoalsCompleted) != 1 {
		t.Errorf("expected the goal on its completion day, got %d", len(rec.GoalsCompleted))
	}

	out.Reset()
	if err := run(ctx, &GoalShowCmd{ID: id}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Run a marathon [completed 2024-03-14]", "Target: 2024-10-01", "[ ] 1. 10k", "[ ] 2. Half marathon"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}

	if err := run(ctx, &GoalDoneCmd{ID: "missing"}); err == nil || !strings.Contains(err.Error(), "goal not found") {
		t.Errorf("expected 'goal not found', got %v", err)
	}
}

func TestDuolingoMissed(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := run(ctx, &DuolingoMarkCmd{Date: "yesterday", Missed: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "missed for 2024-03-14") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if rec := day(t, ctx, "2024-03-14"); rec.Duolingo == nil || rec.Duolingo.Completed {
		t.Errorf("expected a missed day, got %+v", rec.Duolingo)
	}
}
