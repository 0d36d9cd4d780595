package tasks

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/errors"
)

type TaskDoneCmd struct {
	ID   string `arg:"" help:"ID of the task to complete."`
	Date string `help:"Completion date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(ctx.Ctx(), c.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("task not found: %s", c.ID)
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task.Completed {
		ctx.Printf("Task %q was already completed on %s.\n", task.Title, task.CompletionDay())
		return nil
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.CompleteTask(ctx.Ctx(), c.ID, date); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	ctx.Printf("Completed task: %s (%s)\n", task.Title, date)
	return nil
}
