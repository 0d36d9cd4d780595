package models

// DayRecord is every record attached to one calendar date.
type DayRecord struct {
	Date              string             `json:"date"`
	Mood              *Mood              `json:"mood"`
	Activities        []Activity         `json:"activities"`
	Media             []MediaItem        `json:"media"`
	Tasks             []Task             `json:"tasks"`
	Events            []Event            `json:"events"`
	Parks             []Park             `json:"parks"`
	Journals          []Journal          `json:"journals"`
	GoalsCompleted    []Goal             `json:"goals_completed"`
	HabitCompletions  []HabitCompletion  `json:"habit_completions"`
	GithubEvents      []GithubEvent      `json:"github_events"`
	RelationshipItems []RelationshipItem `json:"relationship_items"`
	DailyMeals        []Meal             `json:"daily_meals"`
	Duolingo          *DuolingoDay       `json:"duolingo"`
}

// NewDayRecord returns an empty record with every list allocated, so empty
// days serialize as [] rather than null.
func NewDayRecord(date string) *DayRecord {
	return &DayRecord{
		Date:              date,
		Activities:        []Activity{},
		Media:             []MediaItem{},
		Tasks:             []Task{},
		Events:            []Event{},
		Parks:             []Park{},
		Journals:          []Journal{},
		GoalsCompleted:    []Goal{},
		HabitCompletions:  []HabitCompletion{},
		GithubEvents:      []GithubEvent{},
		RelationshipItems: []RelationshipItem{},
		DailyMeals:        []Meal{},
	}
}

// HasTask reports whether a task with the given ID is already on this day.
func (d *DayRecord) HasTask(id string) bool {
	for _, t := range d.Tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing was recorded on this day.
func (d *DayRecord) IsEmpty() bool {
	return d.Mood == nil && d.Duolingo == nil &&
		len(d.Activities) == 0 && len(d.Media) == 0 && len(d.Tasks) == 0 &&
		len(d.Events) == 0 && len(d.Parks) == 0 && len(d.Journals) == 0 &&
		len(d.GoalsCompleted) == 0 && len(d.HabitCompletions) == 0 &&
		len(d.GithubEvents) == 0 && len(d.RelationshipItems) == 0 &&
		len(d.DailyMeals) == 0
}
