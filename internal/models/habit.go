package models

import "time"

type Habit struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// HabitCompletion marks a habit as done on one day.
type HabitCompletion struct {
	ID        string `json:"id"`
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit_name"`
	Date      string `json:"date"` // YYYY-MM-DD
	Note      string `json:"note,omitempty"`
}
