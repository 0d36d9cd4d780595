package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/utils"
)

// Event is a calendar event. EndDate, when later than Date, makes it span
// every day of [Date, EndDate].
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`               // YYYY-MM-DD
	EndDate     string `json:"end_date,omitempty"` // YYYY-MM-DD, inclusive
	AllDay      bool   `json:"all_day"`
	StartTime   string `json:"start_time,omitempty"` // HH:MM
	EndTime     string `json:"end_time,omitempty"`   // HH:MM
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsMultiDay reports whether the event spans more than its start date.
func (e Event) IsMultiDay() bool {
	return e.EndDate != "" && utils.ValidateDate(e.EndDate) && e.EndDate > e.Date
}

func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if !utils.ValidateDate(e.Date) {
		return fmt.Errorf("invalid event date %q (expected YYYY-MM-DD)", e.Date)
	}
	if e.EndDate != "" {
		if !utils.ValidateDate(e.EndDate) {
			return fmt.Errorf("invalid event end date %q (expected YYYY-MM-DD)", e.EndDate)
		}
		if e.EndDate < e.Date {
			return fmt.Errorf("event end date %s is before start date %s", e.EndDate, e.Date)
		}
	}
	if !e.AllDay && e.StartTime != "" && e.EndTime != "" && e.EndDate == "" && e.EndTime < e.StartTime {
		return fmt.Errorf("event end time %s is before start time %s", e.EndTime, e.StartTime)
	}
	return nil
}
