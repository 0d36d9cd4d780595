package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
)

type TaskCmd struct {
	Add  TaskAddCmd  `cmd:"" help:"Add a new task."`
	Done TaskDoneCmd `cmd:"" help:"Mark a task as completed."`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD, 'today' or 'yesterday'). Tasks without one are listed as upcoming."`
	Notes    string `short:"n" help:"Free-form notes."`
	Priority int    `short:"p" help:"Priority (0-5, 0 means none)." default:"0"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Priority < 0 || c.Priority > 5 {
		return fmt.Errorf("priority must be between 0 and 5")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task := models.Task{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Notes:     c.Notes,
		Priority:  c.Priority,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if c.Due != "" {
		due, err := ctx.ResolveDate(c.Due)
		if err != nil {
			return err
		}
		task.DueDate = due
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.AddTask(ctx.Ctx(), task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	if task.DueDate != "" {
		ctx.Printf("Added task: %s (due %s, ID: %s)\n", task.Title, task.DueDate, task.ID)
	} else {
		ctx.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	}
	return nil
}
