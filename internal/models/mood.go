package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/utils"
)

// Mood is the single mood rating recorded for a day.
type Mood struct {
	ID     string `json:"id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`
}

func (m *Mood) Validate() error {
	if !utils.ValidateDate(m.Date) {
		return fmt.Errorf("invalid mood date %q (expected YYYY-MM-DD)", m.Date)
	}
	if m.Rating < constants.MinMoodRating || m.Rating > constants.MaxMoodRating {
		return fmt.Errorf("mood rating must be between %d and %d", constants.MinMoodRating, constants.MaxMoodRating)
	}
	return nil
}
