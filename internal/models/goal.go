package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/utils"
)

type Goal struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	TargetDate    string `json:"target_date,omitempty"` // YYYY-MM-DD
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"` // YYYY-MM-DD
}

// Milestone is a checkpoint towards a goal.
type Milestone struct {
	ID            string `json:"id"`
	GoalID        string `json:"goal_id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"`
	Position      int    `json:"position"`
}

func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("goal title cannot be empty")
	}
	if g.TargetDate != "" && !utils.ValidateDate(g.TargetDate) {
		return fmt.Errorf("invalid target date %q (expected YYYY-MM-DD)", g.TargetDate)
	}
	if g.Completed && !utils.ValidateDate(g.CompletedDate) {
		return fmt.Errorf("completed goal needs a completion date (YYYY-MM-DD)")
	}
	return nil
}
