package storage

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
)

// RangeReader is the read side consumed by the calendar aggregator. Every
// method returns the records whose relevant date falls in [start, end]
// (inclusive, YYYY-MM-DD), ordered by date then insertion, and an empty
// slice rather than an error when nothing matches.
type RangeReader interface {
	GetMoodsInRange(ctx context.Context, start, end string) ([]models.Mood, error)
	GetActivitiesInRange(ctx context.Context, start, end string) ([]models.Activity, error)
	GetMediaInRange(ctx context.Context, start, end string) ([]models.MediaItem, error)
	// GetTasksInRange returns tasks due in range or completed in range.
	GetTasksInRange(ctx context.Context, start, end string) ([]models.Task, error)
	// GetEventsInRange returns events overlapping the range, including
	// multi-day events that started before it.
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

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the applied and the newest known schema version.
	SchemaVersion() (current int, latest int, err error)

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	RangeReader

	// Mood
	SaveMood(ctx context.Context, mood models.Mood) error // upsert by date
	DeleteMood(ctx context.Context, date string) error
	GetAllMoods(ctx context.Context) ([]models.Mood, error)

	// Tasks
	AddTask(ctx context.Context, task models.Task) error
	GetTask(ctx context.Context, id string) (models.Task, error)
	CompleteTask(ctx context.Context, id string, completedDate string) error

	// Goals
	AddGoal(ctx context.Context, goal models.Goal) error
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	CompleteGoal(ctx context.Context, id string, completedDate string) error
	AddMilestone(ctx context.Context, milestone models.Milestone) error
	GetMilestones(ctx context.Context, goalID string) ([]models.Milestone, error)

	// Habits
	AddHabit(ctx context.Context, habit models.Habit) error
	GetHabitByName(ctx context.Context, name string) (models.Habit, error)
	GetAllHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error)
	ArchiveHabit(ctx context.Context, id string) error
	AddHabitCompletion(ctx context.Context, completion models.HabitCompletion) error // upsert by habit and date

	// Single-date records
	AddEvent(ctx context.Context, event models.Event) error
	AddMedia(ctx context.Context, item models.MediaItem) error
	GetAllMedia(ctx context.Context) ([]models.MediaItem, error)
	AddActivity(ctx context.Context, activity models.Activity) error
	AddPark(ctx context.Context, park models.Park) error
	AddJournal(ctx context.Context, journal models.Journal) error
	AddGithubEvent(ctx context.Context, event models.GithubEvent) error
	AddRelationshipItem(ctx context.Context, item models.RelationshipItem) error
	AddMeal(ctx context.Context, meal models.Meal) error
	SaveDuolingoDay(ctx context.Context, day models.DuolingoDay) error // upsert by date
}
