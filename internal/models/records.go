package models

import "github.com/julianstephens/lifedash/internal/utils"

type Park struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"` // visit date, YYYY-MM-DD
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type Journal struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// GithubEvent is one contribution (push, PR, issue...) pulled from GitHub.
type GithubEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Repo      string `json:"repo"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"` // RFC3339 timestamp
}

// Day returns the calendar date the event belongs to.
func (g GithubEvent) Day() string {
	return utils.DatePart(g.CreatedAt)
}

type RelationshipItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // date, gift, milestone, note
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

type Meal struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	MealType string `json:"meal_type"` // breakfast, lunch, dinner, snack
	Name     string `json:"name"`
	Calories int    `json:"calories,omitempty"`
}

// DuolingoDay records whether the daily lesson happened.
type DuolingoDay struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	XP        int    `json:"xp,omitempty"`
}
