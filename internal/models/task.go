package models

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/utils"
)

type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Notes         string `json:"notes,omitempty"`
	DueDate       string `json:"due_date,omitempty"` // YYYY-MM-DD, optionally with a time suffix
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"` // YYYY-MM-DD, optionally with a time suffix
	Priority      int    `json:"priority"`
	CreatedAt     string `json:"created_at"` // RFC3339 timestamp
}

// DueDay returns the date portion of DueDate, or "" when unset or malformed.
func (t Task) DueDay() string {
	return utils.DatePart(t.DueDate)
}

// CompletionDay returns the date portion of CompletedDate for completed tasks.
func (t Task) CompletionDay() string {
	if !t.Completed {
		return ""
	}
	return utils.DatePart(t.CompletedDate)
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.DueDate != "" && t.DueDay() == "" {
		return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", t.DueDate)
	}
	if t.CompletedDate != "" && utils.DatePart(t.CompletedDate) == "" {
		return fmt.Errorf("invalid completed date %q (expected YYYY-MM-DD)", t.CompletedDate)
	}
	if t.Priority < 0 || t.Priority > 5 {
		return fmt.Errorf("priority must be between 0 and 5")
	}
	return nil
}
