package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/utils"
)

type MediaItem struct {
	ID            string              `json:"id"`
	Type          constants.MediaType `json:"type"`
	Title         string              `json:"title"`
	Creator       string              `json:"creator,omitempty"`
	Genres        []string            `json:"genres"`
	Rating        *float64            `json:"rating,omitempty"`
	CompletedDate string              `json:"completed_date"` // YYYY-MM-DD
}

func (m *MediaItem) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("media title cannot be empty")
	}
	if !constants.IsValidMediaType(m.Type) {
		return fmt.Errorf("unknown media type %q", m.Type)
	}
	if !utils.ValidateDate(m.CompletedDate) {
		return fmt.Errorf("invalid completed date %q (expected YYYY-MM-DD)", m.CompletedDate)
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		return fmt.Errorf("media rating must be between 0 and 10")
	}
	return nil
}
