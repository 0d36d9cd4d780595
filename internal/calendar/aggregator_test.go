package calendar

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/memory"
	"github.com/julianstephens/lifedash/internal/utils"
)

// staticSource returns its records for any range, like a store with a
// broken date filter.
type staticSource struct {
	moods  []models.Mood
	parks  []models.Park
	tasks  []models.Task
	events []models.Event
}

func (s *staticSource) GetMoodsInRange(context.Context, string, string) ([]models.Mood, error) {
	return s.moods, nil
}
func (s *staticSource) GetActivitiesInRange(context.Context, string, string) ([]models.Activity, error) {
	return nil, nil
}
func (s *staticSource) GetMediaInRange(context.Context, string, string) ([]models.MediaItem, error) {
	return nil, nil
}
func (s *staticSource) GetTasksInRange(context.Context, string, string) ([]models.Task, error) {
	return s.tasks, nil
}
func (s *staticSource) GetEventsInRange(context.Context, string, string) ([]models.Event, error) {
	return s.events, nil
}
func (s *staticSource) GetParksInRange(context.Context, string, string) ([]models.Park, error) {
	return s.parks, nil
}
func (s *staticSource) GetJournalsInRange(context.Context, string, string) ([]models.Journal, error) {
	return nil, nil
}
func (s *staticSource) GetGoalsCompletedInRange(context.Context, string, string) ([]models.Goal, error) {
	return nil, nil
}
func (s *staticSource) GetHabitCompletionsInRange(context.Context, string, string) ([]models.HabitCompletion, error) {
	return nil, nil
}
func (s *staticSource) GetGithubEventsInRange(context.Context, string, string) ([]models.GithubEvent, error) {
	return nil, nil
}
func (s *staticSource) GetRelationshipItemsInRange(context.Context, string, string) ([]models.RelationshipItem, error) {
	return nil, nil
}
func (s *staticSource) GetMealsInRange(context.Context, string, string) ([]models.Meal, error) {
	return nil, nil
}
func (s *staticSource) GetDuolingoInRange(context.Context, string, string) ([]models.DuolingoDay, error) {
	return nil, nil
}

func mustBuild(t *testing.T, src Source, start, end string) DayMap {
	t.Helper()
	m, err := NewAggregator(src).BuildCalendarMap(context.Background(), start, end)
	if err != nil {
		t.Fatalf("BuildCalendarMap(%s, %s) failed: %v", start, end, err)
	}
	return m
}

func TestBuildCalendarMap_Coverage(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantDays   int
	}{
		{"leap february", "2024-02-01", "2024-02-29", 29},
		{"plain february", "2023-02-01", "2023-02-28", 28},
		{"single day", "2024-06-15", "2024-06-15", 1},
		{"year boundary", "2023-12-30", "2024-01-02", 4},
		{"spring DST change", "2024-03-09", "2024-03-11", 3},
		{"autumn DST change", "2024-11-02", "2024-11-04", 3},
		{"full year", "2024-01-01", "2024-12-31", 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustBuild(t, memory.New(), tt.start, tt.end)
			if len(m) != tt.wantDays {
				t.Fatalf("len(map) = %d, want %d", len(m), tt.wantDays)
			}

			want, _ := utils.DateRange(tt.start, tt.end)
			if got := m.Dates(); !reflect.DeepEqual(got, want) {
				t.Errorf("Dates() = %v, want %v", got, want)
			}
			for date, day := range m {
				if day.Date != date {
					t.Errorf("map[%s].Date = %s", date, day.Date)
				}
				if day.Tasks == nil || day.Events == nil || day.DailyMeals == nil || day.GithubEvents == nil {
					t.Errorf("map[%s] has nil lists", date)
				}
			}
		})
	}
}

func TestBuildCalendarMap_DegenerateRange(t *testing.T) {
	store := memory.New()
	m, err := NewAggregator(store).BuildCalendarMap(context.Background(), "2024-03-10", "2024-03-01")
	if err != nil {
		t.Fatalf("BuildCalendarMap() error = %v, want nil", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("BuildCalendarMap() = %v, want empty non-nil map", m)
	}
	if calls := store.TotalCalls(); calls != 0 {
		t.Errorf("store received %d calls, want 0", calls)
	}
}

func TestBuildCalendarMap_InvalidDate(t *testing.T) {
	for _, r := range [][2]string{{"2024-02-30", "2024-03-01"}, {"2024-01-01", "soon"}} {
		_, err := NewAggregator(memory.New()).BuildCalendarMap(context.Background(), r[0], r[1])
		if !errors.Is(err, utils.ErrInvalidDate) {
			t.Errorf("BuildCalendarMap(%s, %s) error = %v, want %v", r[0], r[1], err, utils.ErrInvalidDate)
		}
	}
}

func TestBuildCalendarMap_FebruaryScenario(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	if err := store.SaveMood(ctx, models.Mood{Date: "2024-02-15", Rating: 4}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddTask(ctx, models.Task{ID: "t1", Title: "file taxes", DueDate: "2024-02-20"}); err != nil {
		t.Fatal(err)
	}

	m := mustBuild(t, store, "2024-02-01", "2024-02-29")
	if len(m) != 29 {
		t.Fatalf("len(map) = %d, want 29", len(m))
	}
	if m["2024-02-15"].Mood == nil || m["2024-02-15"].Mood.Rating != 4 {
		t.Errorf("map[2024-02-15].Mood = %+v, want rating 4", m["2024-02-15"].Mood)
	}
	if len(m["2024-02-20"].Tasks) != 1 {
		t.Errorf("len(map[2024-02-20].Tasks) = %d, want 1", len(m["2024-02-20"].Tasks))
	}
	for date, day := range m {
		if date != "2024-02-15" && day.Mood != nil {
			t.Errorf("map[%s].Mood = %+v, want nil", date, day.Mood)
		}
		if date != "2024-02-20" && len(day.Tasks) != 0 {
			t.Errorf("map[%s].Tasks = %+v, want empty", date, day.Tasks)
		}
	}
}

func TestBuildCalendarMap_MultiDayEvent(t *testing.T) {
	store := memory.New()
	if err := store.AddEvent(context.Background(), models.Event{
		ID: "e1", Title: "lake trip", Date: "2024-06-28", EndDate: "2024-07-02",
	}); err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		"2024-06-28": true, "2024-06-29": true, "2024-06-30": true, "2024-07-01": true, "2024-07-02": true,
	}

	agg := NewAggregator(store)
	m, err := agg.BuildCalendarMap(context.Background(), "2024-06-20", "2024-07-10")
	if err != nil {
		t.Fatalf("BuildCalendarMap() failed: %v", err)
	}
	for date, day := range m {
		got := len(day.Events) == 1 && day.Events[0].ID == "e1"
		if got != want[date] {
			t.Errorf("event on %s = %v, want %v", date, got, want[date])
		}
	}

	// a range covering only part of the span clips without dropping
	june, err := agg.BuildMonth(context.Background(), 2024, 6)
	if err != nil {
		t.Fatalf("BuildMonth() failed: %v", err)
	}
	for _, date := range []string{"2024-06-28", "2024-06-29", "2024-06-30"} {
		if len(june[date].Events) != 1 {
			t.Errorf("june[%s] has %d events, want 1", date, len(june[date].Events))
		}
	}
	if len(june["2024-06-27"].Events) != 0 {
		t.Errorf("june[2024-06-27] has events, want none")
	}
	if dropped := agg.LastStats().Dropped; dropped != 0 {
		t.Errorf("LastStats().Dropped = %d, want 0", dropped)
	}
}

func TestBuildCalendarMap_EventEndDateNotAfterStart(t *testing.T) {
	src := &staticSource{events: []models.Event{
		{ID: "same", Title: "same day", Date: "2024-05-05", EndDate: "2024-05-05"},
		{ID: "bad", Title: "bad end", Date: "2024-05-06", EndDate: "never"},
	}}
	m := mustBuild(t, src, "2024-05-01", "2024-05-31")
	if len(m["2024-05-05"].Events) != 1 || len(m["2024-05-06"].Events) != 1 {
		t.Errorf("single-date fallback failed: %+v / %+v", m["2024-05-05"].Events, m["2024-05-06"].Events)
	}
	if len(m["2024-05-07"].Events) != 0 {
		t.Errorf("bad end date spilled onto 2024-05-07")
	}
}

func TestBuildCalendarMap_TaskPlacement(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	tasks := []models.Task{
		{ID: "dual", Title: "report", DueDate: "2024-03-10", Completed: true, CompletedDate: "2024-03-12"},
		{ID: "same", Title: "gym", DueDate: "2024-03-05", Completed: true, CompletedDate: "2024-03-05T18:00:00Z"},
		{ID: "late", Title: "old", DueDate: "2024-02-10", Completed: true, CompletedDate: "2024-03-02"},
	}
	for _, task := range tasks {
		if err := store.AddTask(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	m := mustBuild(t, store, "2024-03-01", "2024-03-31")
	for _, date := range []string{"2024-03-10", "2024-03-12"} {
		if len(m[date].Tasks) != 1 || m[date].Tasks[0].ID != "dual" {
			t.Errorf("map[%s].Tasks = %+v, want dual", date, m[date].Tasks)
		}
	}
	if len(m["2024-03-05"].Tasks) != 1 {
		t.Errorf("map[2024-03-05] has %d tasks, want 1", len(m["2024-03-05"].Tasks))
	}
	if len(m["2024-03-02"].Tasks) != 1 {
		t.Errorf("task completed in range but due before it should sit on its completion day")
	}

	if got := AggregateMonth(m).Tasks; got != 3 {
		t.Errorf("AggregateMonth().Tasks = %d, want 3", got)
	}
}

func TestBuildCalendarMap_Idempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	_ = store.SaveMood(ctx, models.Mood{Date: "2024-04-02", Rating: 3})
	_ = store.AddEvent(ctx, models.Event{ID: "e", Title: "x", Date: "2024-03-30", EndDate: "2024-04-03"})
	_ = store.AddTask(ctx, models.Task{ID: "t", Title: "y", DueDate: "2024-04-04", Completed: true, CompletedDate: "2024-04-06"})
	_ = store.AddMeal(ctx, models.Meal{ID: "m", Date: "2024-04-04", MealType: "lunch", Name: "soup"})

	first := mustBuild(t, store, "2024-04-01", "2024-04-30")
	second := mustBuild(t, store, "2024-04-01", "2024-04-30")
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds over an unchanged store differ")
	}
}

func TestBuildCalendarMap_QueryFailure(t *testing.T) {
	store := memory.New()
	boom := errors.New("connection reset")
	store.FailOn("GetEventsInRange", boom)

	m, err := NewAggregator(store).BuildCalendarMap(context.Background(), "2024-01-01", "2024-01-31")
	if !errors.Is(err, boom) {
		t.Fatalf("BuildCalendarMap() error = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "querying events") {
		t.Errorf("error %q does not name the failing domain", err)
	}
	if m != nil {
		t.Errorf("BuildCalendarMap() returned a partial map on failure")
	}
}

func TestBuildCalendarMap_OutOfRangeRecords(t *testing.T) {
	src := &staticSource{
		moods: []models.Mood{
			{ID: "m1", Date: "2024-01-10", Rating: 2},
			{ID: "m2", Date: "2024-01-10", Rating: 5},
			{ID: "m3", Date: "2023-12-31", Rating: 1},
		},
		parks: []models.Park{
			{ID: "p1", Name: "Acadia", Date: "2024-01-05"},
			{ID: "p2", Name: "Denali", Date: "2024-02-01"},
		},
		tasks: []models.Task{{ID: "t1", Title: "nowhere", DueDate: "2024-05-01"}},
	}

	agg := NewAggregator(src)
	m, stats, err := agg.Build(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if stats.Dropped != 3 {
		t.Errorf("Dropped = %d, want 3", stats.Dropped)
	}
	if stats.ByDomain[DomainParks] != 1 || stats.ByDomain[DomainMoods] != 1 || stats.ByDomain[DomainTasks] != 1 {
		t.Errorf("ByDomain = %v", stats.ByDomain)
	}
	if len(m["2024-01-05"].Parks) != 1 {
		t.Errorf("in-range park missing")
	}
	if m["2024-01-10"].Mood == nil || m["2024-01-10"].Mood.Rating != 5 {
		t.Errorf("duplicate moods: got %+v, want the last one", m["2024-01-10"].Mood)
	}

	if _, err := agg.BuildCalendarMap(context.Background(), "2024-01-01", "2024-01-31"); err != nil {
		t.Fatalf("BuildCalendarMap() failed: %v", err)
	}
	if got := agg.LastStats().Dropped; got != 3 {
		t.Errorf("LastStats().Dropped = %d, want 3", got)
	}
}
