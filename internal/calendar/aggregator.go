// Package calendar folds per-domain records into one DayRecord per calendar
// date and reduces those day maps into grid summaries and month totals.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

// Source is the set of range queries the aggregator reads from. Every query
// takes inclusive YYYY-MM-DD bounds and returns an empty slice, not an
// error, when nothing matches.
type Source interface {
	GetMoodsInRange(ctx context.Context, start, end string) ([]models.Mood, error)
	GetActivitiesInRange(ctx context.Context, start, end string) ([]models.Activity, error)
	GetMediaInRange(ctx context.Context, start, end string) ([]models.MediaItem, error)
	GetTasksInRange(ctx context.Context, start, end string) ([]models.Task, error)
	GetEventsInRange(ctx context.Context, start, end string) ([]models.Event, error)
	GetParksInRange(ctx context.Context, start, end string) ([]models.Park, error)
	GetJournalsInRange(ctx context.Context, start, end string) ([]models.Journal, error)
	GetGoalsCompletedInRange(ctx context.Context, start, end string) ([]models.Goal, error)
	GetHabitCompletionsInRange(ctx context.Context, start, end string) ([]models.HabitCompletion, error)
	GetGithubEventsInRange(ctx context.Context, start, end string) ([]models.GithubEvent, error)
	GetRelationshipItemsInRange(ctx context.Context, start, end string) ([]models.RelationshipItem, error)
	GetMealsInRange(ctx context.Context, start, end string) ([]models.Meal, error)
	GetDuolingoInRange(ctx context.Context, start, end string) ([]models.DuolingoDay, error)
}

// Domain names used in error messages and drop accounting.
const (
	DomainMoods         = "moods"
	DomainActivities    = "activities"
	DomainMedia         = "media"
	DomainTasks         = "tasks"
	DomainEvents        = "events"
	DomainParks         = "parks"
	DomainJournals      = "journals"
	DomainGoals         = "goals"
	DomainHabits        = "habit completions"
	DomainGithub        = "github events"
	DomainRelationships = "relationship items"
	DomainMeals         = "meals"
	DomainDuolingo      = "duolingo"
)

// DayMap holds one DayRecord per date of a requested range.
type DayMap map[string]*models.DayRecord

// Dates returns the map's keys in ascending order.
func (m DayMap) Dates() []string {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// MergeStats counts records a store returned for dates outside the
// requested range. They are dropped rather than failing the build.
type MergeStats struct {
	Dropped  int
	ByDomain map[string]int
}

func (s *MergeStats) drop(domain, id, date string) {
	s.Dropped++
	if s.ByDomain == nil {
		s.ByDomain = map[string]int{}
	}
	s.ByDomain[domain]++
	logger.Debug("Dropping out-of-range record", "domain", domain, "id", id, "date", date)
}

type Aggregator struct {
	src Source

	mu   sync.Mutex
	last MergeStats
}

func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// LastStats returns the drop accounting of the most recent build.
func (a *Aggregator) LastStats() MergeStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// BuildMonth builds the day map for every date of one calendar month.
func (a *Aggregator) BuildMonth(ctx context.Context, year int, month time.Month) (DayMap, error) {
	start, end := utils.MonthBounds(year, month)
	return a.BuildCalendarMap(ctx, start, end)
}

// BuildCalendarMap returns one DayRecord for every date in [start, end] with
// every record of that date attached. A start after end yields an empty map
// without touching the store. Any failed query fails the whole build.
func (a *Aggregator) BuildCalendarMap(ctx context.Context, start, end string) (DayMap, error) {
	m, stats, err := a.Build(ctx, start, end)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.last = stats
	a.mu.Unlock()
	return m, nil
}

// Build is BuildCalendarMap returning the merge statistics alongside the map.
func (a *Aggregator) Build(ctx context.Context, start, end string) (DayMap, MergeStats, error) {
	dates, err := utils.DateRange(start, end)
	if err != nil {
		return nil, MergeStats{}, err
	}

	m := make(DayMap, len(dates))
	if len(dates) == 0 {
		return m, MergeStats{}, nil
	}
	for _, d := range dates {
		m[d] = models.NewDayRecord(d)
	}

	res, err := a.fetch(ctx, start, end)
	if err != nil {
		return nil, MergeStats{}, err
	}

	var stats MergeStats
	res.merge(m, &stats)
	if stats.Dropped > 0 {
		logger.Debug("Calendar build dropped records", "start", start, "end", end, "dropped", stats.Dropped)
	}
	return m, stats, nil
}

// results holds the raw rows of every domain for one range.
type results struct {
	moods         []models.Mood
	activities    []models.Activity
	media         []models.MediaItem
	tasks         []models.Task
	events        []models.Event
	parks         []models.Park
	journals      []models.Journal
	goals         []models.Goal
	habits        []models.HabitCompletion
	github        []models.GithubEvent
	relationships []models.RelationshipItem
	meals         []models.Meal
	duolingo      []models.DuolingoDay
}

func spawn[T any](g *errgroup.Group, ctx context.Context, domain string, q func(context.Context, string, string) ([]T, error), start, end string, dst *[]T) {
	g.Go(func() error {
		items, err := q(ctx, start, end)
		if err != nil {
			return fmt.Errorf("querying %s: %w", domain, err)
		}
		*dst = items
		return nil
	})
}

// fetch runs every range query concurrently. Each goroutine writes only its
// own field; the first error cancels the others.
func (a *Aggregator) fetch(ctx context.Context, start, end string) (*results, error) {
	res := &results{}
	g, gctx := errgroup.WithContext(ctx)

	spawn(g, gctx, DomainMoods, a.src.GetMoodsInRange, start, end, &res.moods)
	spawn(g, gctx, DomainActivities, a.src.GetActivitiesInRange, start, end, &res.activities)
	spawn(g, gctx, DomainMedia, a.src.GetMediaInRange, start, end, &res.media)
	spawn(g, gctx, DomainTasks, a.src.GetTasksInRange, start, end, &res.tasks)
	spawn(g, gctx, DomainEvents, a.src.GetEventsInRange, start, end, &res.events)
	spawn(g, gctx, DomainParks, a.src.GetParksInRange, start, end, &res.parks)
	spawn(g, gctx, DomainJournals, a.src.GetJournalsInRange, start, end, &res.journals)
	spawn(g, gctx, DomainGoals, a.src.GetGoalsCompletedInRange, start, end, &res.goals)
	spawn(g, gctx, DomainHabits, a.src.GetHabitCompletionsInRange, start, end, &res.habits)
	spawn(g, gctx, DomainGithub, a.src.GetGithubEventsInRange, start, end, &res.github)
	spawn(g, gctx, DomainRelationships, a.src.GetRelationshipItemsInRange, start, end, &res.relationships)
	spawn(g, gctx, DomainMeals, a.src.GetMealsInRange, start, end, &res.meals)
	spawn(g, gctx, DomainDuolingo, a.src.GetDuolingoInRange, start, end, &res.duolingo)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// place attaches each item to the day its key names, dropping the rest.
func place[T any](m DayMap, stats *MergeStats, domain string, items []T, key func(T) (id, date string), add func(*models.DayRecord, T)) {
	for _, item := range items {
		id, date := key(item)
		day, ok := m[date]
		if !ok {
			stats.drop(domain, id, date)
			continue
		}
		add(day, item)
	}
}

// merge attaches every fetched record in a fixed domain order.
func (r *results) merge(m DayMap, stats *MergeStats) {
	place(m, stats, DomainMoods, r.moods,
		func(v models.Mood) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.Mood) { d.Mood = &v })
	place(m, stats, DomainActivities, r.activities,
		func(v models.Activity) (string, string) { return v.ID, v.Day() },
		func(d *models.DayRecord, v models.Activity) { d.Activities = append(d.Activities, v) })
	place(m, stats, DomainMedia, r.media,
		func(v models.MediaItem) (string, string) { return v.ID, v.CompletedDate },
		func(d *models.DayRecord, v models.MediaItem) { d.Media = append(d.Media, v) })

	for _, t := range r.tasks {
		placeTask(m, stats, t)
	}
	for _, e := range r.events {
		placeEvent(m, stats, e)
	}

	place(m, stats, DomainParks, r.parks,
		func(v models.Park) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.Park) { d.Parks = append(d.Parks, v) })
	place(m, stats, DomainJournals, r.journals,
		func(v models.Journal) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.Journal) { d.Journals = append(d.Journals, v) })
	place(m, stats, DomainGoals, r.goals,
		func(v models.Goal) (string, string) { return v.ID, utils.DatePart(v.CompletedDate) },
		func(d *models.DayRecord, v models.Goal) { d.GoalsCompleted = append(d.GoalsCompleted, v) })
	place(m, stats, DomainHabits, r.habits,
		func(v models.HabitCompletion) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.HabitCompletion) { d.HabitCompletions = append(d.HabitCompletions, v) })
	place(m, stats, DomainGithub, r.github,
		func(v models.GithubEvent) (string, string) { return v.ID, v.Day() },
		func(d *models.DayRecord, v models.GithubEvent) { d.GithubEvents = append(d.GithubEvents, v) })
	place(m, stats, DomainRelationships, r.relationships,
		func(v models.RelationshipItem) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.RelationshipItem) {
			d.RelationshipItems = append(d.RelationshipItems, v)
		})
	place(m, stats, DomainMeals, r.meals,
		func(v models.Meal) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.Meal) { d.DailyMeals = append(d.DailyMeals, v) })
	place(m, stats, DomainDuolingo, r.duolingo,
		func(v models.DuolingoDay) (string, string) { return v.ID, v.Date },
		func(d *models.DayRecord, v models.DuolingoDay) { d.Duolingo = &v })
}

// placeTask puts a task on its due day and, once completed on a different
// day, on its completion day too. A day never holds the same task twice.
func placeTask(m DayMap, stats *MergeStats, t models.Task) {
	placed := false
	for _, date := range []string{t.DueDay(), t.CompletionDay()} {
		day, ok := m[date]
		if !ok {
			continue
		}
		placed = true
		if !day.HasTask(t.ID) {
			day.Tasks = append(day.Tasks, t)
		}
	}
	if !placed {
		stats.drop(DomainTasks, t.ID, t.DueDate)
	}
}

// placeEvent puts an event on every day of [Date, EndDate] inside the map.
// Days outside the map are clipped, not counted as drops.
func placeEvent(m DayMap, stats *MergeStats, e models.Event) {
	if !e.IsMultiDay() {
		day, ok := m[e.Date]
		if !ok {
			stats.drop(DomainEvents, e.ID, e.Date)
			return
		}
		day.Events = append(day.Events, e)
		return
	}

	from, err := utils.ParseDate(e.Date)
	if err != nil {
		stats.drop(DomainEvents, e.ID, e.Date)
		return
	}
	to, err := utils.ParseDate(e.EndDate)
	if err != nil {
		stats.drop(DomainEvents, e.ID, e.Date)
		return
	}

	placed := false
	for d := from; !d.After(to); d = utils.NextDay(d) {
		if day, ok := m[utils.FormatDate(d)]; ok {
			day.Events = append(day.Events, e)
			placed = true
		}
	}
	if !placed {
		stats.drop(DomainEvents, e.ID, e.Date)
	}
}
