package views

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifedash/internal/analytics"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/memory"
)

func setupTestContext(t *testing.T) (*cli.Context, *memory.Store, *bytes.Buffer) {
	t.Helper()
	store := memory.New()
	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	ctx.Timezone = "UTC"
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return ctx, store, out
}

func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	c := ctx.Ctx()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(ctx.Store.SaveMood(c, models.Mood{ID: "m1", Date: "2024-03-10", Rating: 4, Note: "lazy sunday"}))
	must(ctx.Store.AddEvent(c, models.Event{ID: "e1", Title: "Brunch", Date: "2024-03-10", StartTime: "11:00", EndTime: "12:30"}))
	must(ctx.Store.AddTask(c, models.Task{ID: "t1", Title: "Laundry", DueDate: "2024-03-10", CreatedAt: "2024-03-01T00:00:00Z"}))
	must(ctx.Store.AddMeal(c, models.Meal{ID: "ml1", Date: "2024-03-10", MealType: "dinner", Name: "Tacos", Calories: 800}))
	must(ctx.Store.AddActivity(c, models.Activity{ID: "a1", Type: "run", Title: "Easy run", StartTime: "2024-03-12T07:00:00Z", DurationMin: 40, DistanceKm: 6.4}))
}

func TestCalendarMonthCmd(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	seed(t, ctx)

	if err := (&CalendarMonthCmd{}).Run(ctx); err != nil {
		t.Fatalf("calendar month failed: %v", err)
	}
	for _, want := range []string{"March 2024", "Mood avg 4.0 over 1 day(s)", "Activities 1 (40 min, 6.4 km)", "Meals 1 (800 kcal)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestCalendarMonthCmd_JSON(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	seed(t, ctx)

	if err := (&CalendarMonthCmd{Month: "2024-02", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("calendar month --json failed: %v", err)
	}
	var dump struct {
		Month string `json:"month"`
		Days  []struct {
			Date string `json:"date"`
		} `json:"days"`
		Totals struct {
			TotalDays int `json:"total_days"`
			MoodDays  int `json:"mood_days"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(out.Bytes(), &dump); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if dump.Month != "2024-02" || len(dump.Days) != 29 || dump.Totals.TotalDays != 29 {
		t.Errorf("unexpected dump: month=%s days=%d total_days=%d", dump.Month, len(dump.Days), dump.Totals.TotalDays)
	}
	if dump.Days[0].Date != "2024-02-01" || dump.Days[28].Date != "2024-02-29" {
		t.Errorf("days out of order: %s .. %s", dump.Days[0].Date, dump.Days[28].Date)
	}
	if dump.Totals.MoodDays != 0 {
		t.Errorf("March mood leaked into February: %d", dump.Totals.MoodDays)
	}
}

func TestCalendarMonthCmd_InvalidMonth(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	if err := (&CalendarMonthCmd{Month: "2024-13"}).Run(ctx); err == nil {
		t.Error("expected invalid month to fail")
	}
}

func TestCalendarDayCmd(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	seed(t, ctx)

	if err := (&CalendarDayCmd{Date: "2024-03-10"}).Run(ctx); err != nil {
		t.Fatalf("calendar day failed: %v", err)
	}
	for _, want := range []string{"Mood: 4/5", "mood note: lazy sunday", "event     11:00-12:30 Brunch", "task      [ ] Laundry", "dinner    Tacos"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestCalendarDayCmd_JSON(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	seed(t, ctx)

	if err := (&CalendarDayCmd{Date: "2024-03-12", JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var rec models.DayRecord
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec.Date != "2024-03-12" || len(rec.Activities) != 1 || rec.Mood != nil {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestCalendarDayCmd_Empty(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&CalendarDayCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "2024-03-15") || !strings.Contains(out.String(), "Nothing recorded.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCalendarCmd_StoreFailure(t *testing.T) {
	ctx, store, _ := setupTestContext(t)
	store.FailOn("GetMealsInRange", stderrors.New("connection reset"))

	err := (&CalendarDayCmd{Date: "2024-03-10"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("expected the store error to surface, got %v", err)
	}
}

func addMedia(t *testing.T, ctx *cli.Context, title string, typ constants.MediaType, date string, rating float64) {
	t.Helper()
	r := rating
	item := models.MediaItem{ID: title, Title: title, Type: typ, CompletedDate: date, Rating: &r, Genres: []string{}}
	if err := ctx.Store.AddMedia(ctx.Ctx(), item); err != nil {
		t.Fatal(err)
	}
}

func TestTimelineCmd(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	addMedia(t, ctx, "Dune", constants.MediaBook, "2024-01-05", 9)
	addMedia(t, ctx, "Heat", constants.MediaMovie, "2024-01-20", 8)
	addMedia(t, ctx, "Emma", constants.MediaBook, "2024-03-02", 7)

	if err := (&TimelineCmd{Period: "month"}).Run(ctx); err != nil {
		t.Fatalf("timeline failed: %v", err)
	}
	for _, want := range []string{"2024-01", "movie 1, book 1", "2024-03", "Total: 3 items, 1.5 per month", "Most active: 2024-01 (2)", "Top type: book (2)", "Trend: -50.0%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "2024-02") {
		t.Errorf("empty months should not be listed:\n%s", out.String())
	}
}

func TestTimelineCmd_RangeJSON(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	addMedia(t, ctx, "Dune", constants.MediaBook, "2024-01-05", 9)
	addMedia(t, ctx, "Emma", constants.MediaBook, "2024-03-02", 7)

	if err := (&TimelineCmd{Period: "year", From: "2024-02-01", JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var data analytics.TimelineData
	if err := json.Unmarshal(out.Bytes(), &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(data.Points) != 1 || data.Points[0].Label != "2024" || data.Stats.TotalItems != 1 {
		t.Errorf("unexpected timeline: %+v", data)
	}
}

func TestTimelineCmd_InvalidPeriod(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	err := (&TimelineCmd{Period: "decade"}).Run(ctx)
	if !stderrors.Is(err, analytics.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestTimelineCmd_Empty(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&TimelineCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No media recorded.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
