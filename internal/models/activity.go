package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/utils"
)

// Activity is an exercise session. Its calendar day is the date portion of StartTime.
type Activity struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"` // run, ride, lift, hike...
	Title       string   `json:"title"`
	StartTime   string   `json:"start_time"` // RFC3339 timestamp
	DurationMin int      `json:"duration_min"`
	DistanceKm  float64  `json:"distance_km,omitempty"`
	Calories    int      `json:"calories,omitempty"`
	Exercises   []string `json:"exercises"`
}

// Day returns the calendar date the activity belongs to.
func (a Activity) Day() string {
	return utils.DatePart(a.StartTime)
}

func (a *Activity) Validate() error {
	if a.Type == "" {
		return fmt.Errorf("activity type cannot be empty")
	}
	if a.Day() == "" {
		return fmt.Errorf("invalid activity start time %q", a.StartTime)
	}
	if a.DurationMin < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}
