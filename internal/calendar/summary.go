package calendar

import (
	"math"

	"github.com/julianstephens/lifedash/internal/models"
)

// Category enumerates the list-valued parts of a DayRecord in display order.
type Category int

const (
	CategoryEvents Category = iota
	CategoryTasks
	CategoryActivities
	CategoryMedia
	CategoryParks
	CategoryJournals
	CategoryGoals
	CategoryHabits
	CategoryGithub
	CategoryRelationships
	CategoryMeals
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryEvents,
	CategoryTasks,
	CategoryActivities,
	CategoryMedia,
	CategoryParks,
	CategoryJournals,
	CategoryGoals,
	CategoryHabits,
	CategoryGithub,
	CategoryRelationships,
	CategoryMeals,
}

func (c Category) String() string {
	switch c {
	case CategoryEvents:
		return "events"
	case CategoryTasks:
		return "tasks"
	case CategoryActivities:
		return "activities"
	case CategoryMedia:
		return "media"
	case CategoryParks:
		return "parks"
	case CategoryJournals:
		return "journals"
	case CategoryGoals:
		return "goals"
	case CategoryHabits:
		return "habits"
	case CategoryGithub:
		return "github"
	case CategoryRelationships:
		return "relationship"
	case CategoryMeals:
		return "meals"
	default:
		return "unknown"
	}
}

// Preview is the display part of the first record in a category.
type Preview struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

type CategorySummary struct {
	Count int      `json:"count"`
	First *Preview `json:"first,omitempty"`
}

// TaskSummary splits a day's tasks by state. Tasks without a due date count
// as upcoming.
type TaskSummary struct {
	CategorySummary
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Upcoming  int `json:"upcoming"`
}

// DaySummary is the compact projection of a DayRecord used for grid cells.
type DaySummary struct {
	Date          string          `json:"date"`
	MoodRating    *int            `json:"mood_rating,omitempty"`
	DuolingoDone  bool            `json:"duolingo_done"`
	Events        CategorySummary `json:"events"`
	Tasks         TaskSummary     `json:"tasks"`
	Activities    CategorySummary `json:"activities"`
	Media         CategorySummary `json:"media"`
	Parks         CategorySummary `json:"parks"`
	Journals      CategorySummary `json:"journals"`
	Goals         CategorySummary `json:"goals"`
	Habits        CategorySummary `json:"habits"`
	Github        CategorySummary `json:"github"`
	Relationships CategorySummary `json:"relationships"`
	Meals         CategorySummary `json:"meals"`
}

// Category returns the summary of one category.
func (s DaySummary) Category(c Category) CategorySummary {
	switch c {
	case CategoryEvents:
		return s.Events
	case CategoryTasks:
		return s.Tasks.CategorySummary
	case CategoryActivities:
		return s.Activities
	case CategoryMedia:
		return s.Media
	case CategoryParks:
		return s.Parks
	case CategoryJournals:
		return s.Journals
	case CategoryGoals:
		return s.Goals
	case CategoryHabits:
		return s.Habits
	case CategoryGithub:
		return s.Github
	case CategoryRelationships:
		return s.Relationships
	case CategoryMeals:
		return s.Meals
	default:
		return CategorySummary{}
	}
}

// Total counts every listed record of the day.
func (s DaySummary) Total() int {
	total := 0
	for _, c := range Categories {
		total += s.Category(c).Count
	}
	return total
}

// IsEmpty reports whether the day has nothing to show.
func (s DaySummary) IsEmpty() bool {
	return s.MoodRating == nil && !s.DuolingoDone && s.Total() == 0
}

func summarize[T any](items []T, preview func(T) Preview) CategorySummary {
	cs := CategorySummary{Count: len(items)}
	if len(items) > 0 {
		p := preview(items[0])
		cs.First = &p
	}
	return cs
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// SummarizeDay reduces a day to counts and first-item previews. today
// (YYYY-MM-DD) decides which open tasks are overdue.
func SummarizeDay(day *models.DayRecord, today string) DaySummary {
	if day == nil {
		return DaySummary{}
	}
	s := DaySummary{Date: day.Date}
	if day.Mood != nil {
		rating := day.Mood.Rating
		s.MoodRating = &rating
	}
	s.DuolingoDone = day.Duolingo != nil && day.Duolingo.Completed

	s.Events = summarize(day.Events, func(e models.Event) Preview {
		return Preview{Title: e.Title, Type: "event"}
	})
	s.Activities = summarize(day.Activities, func(a models.Activity) Preview {
		return Preview{Title: orDefault(a.Title, a.Type), Type: a.Type}
	})
	s.Media = summarize(day.Media, func(m models.MediaItem) Preview {
		return Preview{Title: m.Title, Type: string(m.Type)}
	})
	s.Parks = summarize(day.Parks, func(p models.Park) Preview {
		return Preview{Title: p.Name, Type: "park"}
	})
	s.Journals = summarize(day.Journals, func(j models.Journal) Preview {
		return Preview{Title: orDefault(j.Title, "Journal entry"), Type: "journal"}
	})
	s.Goals = summarize(day.GoalsCompleted, func(g models.Goal) Preview {
		return Preview{Title: g.Title, Type: "goal"}
	})
	s.Habits = summarize(day.HabitCompletions, func(h models.HabitCompletion) Preview {
		return Preview{Title: h.HabitName, Type: "habit"}
	})
	s.Github = summarize(day.GithubEvents, func(g models.GithubEvent) Preview {
		return Preview{Title: orDefault(g.Title, g.Repo), Type: g.Type}
	})
	s.Relationships = summarize(day.RelationshipItems, func(r models.RelationshipItem) Preview {
		return Preview{Title: r.Title, Type: r.Type}
	})
	s.Meals = summarize(day.DailyMeals, func(m models.Meal) Preview {
		return Preview{Title: m.Name, Type: m.MealType}
	})

	s.Tasks.CategorySummary = summarize(day.Tasks, func(t models.Task) Preview {
		return Preview{Title: t.Title, Type: "task"}
	})
	for _, t := range day.Tasks {
		switch due := t.DueDay(); {
		case t.Completed:
			s.Tasks.Completed++
		case due != "" && due < today:
			s.Tasks.Overdue++
		default:
			s.Tasks.Upcoming++
		}
	}
	return s
}

// SummarizeMonth summarizes every day of a map.
func SummarizeMonth(m DayMap, today string) map[string]DaySummary {
	out := make(map[string]DaySummary, len(m))
	for date, day := range m {
		out[date] = SummarizeDay(day, today)
	}
	return out
}

// MonthTotals are the deduplicated sums across every day of a map.
type MonthTotals struct {
	TotalDays         int      `json:"total_days"`
	Events            int      `json:"events"`
	Tasks             int      `json:"tasks"`
	TasksCompleted    int      `json:"tasks_completed"`
	TasksOpen         int      `json:"tasks_open"`
	Activities        int      `json:"activities"`
	ActivityMinutes   int      `json:"activity_minutes"`
	DistanceKm        float64  `json:"distance_km"`
	Media             int      `json:"media"`
	Parks             int      `json:"parks"`
	Journals          int      `json:"journals"`
	GoalsCompleted    int      `json:"goals_completed"`
	HabitCompletions  int      `json:"habit_completions"`
	GithubEvents      int      `json:"github_events"`
	RelationshipItems int      `json:"relationship_items"`
	Meals             int      `json:"meals"`
	MealCalories      int      `json:"meal_calories"`
	MoodDays          int      `json:"mood_days"`
	AvgMood           *float64 `json:"avg_mood"` // nil when no day has a mood
	DuolingoDays      int      `json:"duolingo_days"`
	DuolingoRate      float64  `json:"duolingo_rate"`
	HabitDays         int      `json:"habit_days"`
	HabitRate         float64  `json:"habit_rate"`
}

// AggregateMonth sums a day map. Tasks, completed goals and events can sit
// on several days and are counted once per ID. Rates divide by the number of
// days in the map.
func AggregateMonth(m DayMap) MonthTotals {
	totals := MonthTotals{TotalDays: len(m)}

	seenTasks := map[string]bool{}
	seenGoals := map[string]bool{}
	seenEvents := map[string]bool{}
	moodSum := 0

	for _, date := range m.Dates() {
		day := m[date]

		for _, t := range day.Tasks {
			if seenTasks[t.ID] {
				continue
			}
			seenTasks[t.ID] = true
			totals.Tasks++
			if t.Completed {
				totals.TasksCompleted++
			} else {
				totals.TasksOpen++
			}
		}
		for _, g := range day.GoalsCompleted {
			if !seenGoals[g.ID] {
				seenGoals[g.ID] = true
				totals.GoalsCompleted++
			}
		}
		for _, e := range day.Events {
			if !seenEvents[e.ID] {
				seenEvents[e.ID] = true
				totals.Events++
			}
		}

		totals.Activities += len(day.Activities)
		for _, a := range day.Activities {
			totals.ActivityMinutes += a.DurationMin
			totals.DistanceKm += a.DistanceKm
		}
		totals.Media += len(day.Media)
		totals.Parks += len(day.Parks)
		totals.Journals += len(day.Journals)
		totals.HabitCompletions += len(day.HabitCompletions)
		totals.GithubEvents += len(day.GithubEvents)
		totals.RelationshipItems += len(day.RelationshipItems)
		totals.Meals += len(day.DailyMeals)
		for _, meal := range day.DailyMeals {
			totals.MealCalories += meal.Calories
		}

		if day.Mood != nil {
			totals.MoodDays++
			moodSum += day.Mood.Rating
		}
		if day.Duolingo != nil && day.Duolingo.Completed {
			totals.DuolingoDays++
		}
		if len(day.HabitCompletions) > 0 {
			totals.HabitDays++
		}
	}

	if totals.MoodDays > 0 {
		avg := float64(moodSum) / float64(totals.MoodDays)
		totals.AvgMood = &avg
	}
	if totals.TotalDays > 0 {
		totals.DuolingoRate = float64(totals.DuolingoDays) / float64(totals.TotalDays)
		totals.HabitRate = float64(totals.HabitDays) / float64(totals.TotalDays)
	}
	return totals
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
