package records

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/models"
)

type GoalCmd struct {
	Add  GoalAddCmd  `cmd:"" help:"Add a goal."`
	Done GoalDoneCmd `cmd:"" help:"Mark a goal as completed."`
	Show GoalShowCmd `cmd:"" help:"Show a goal and its milestones."`
}

type MilestoneCmd struct {
	Add MilestoneAddCmd `cmd:"" help:"Add a milestone to a goal."`
}

func getGoal(ctx *cli.Context, id string) (models.Goal, error) {
	goal, err := ctx.Store.GetGoal(ctx.Ctx(), id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return models.Goal{}, fmt.Errorf("goal not found: %s", id)
		}
		return models.Goal{}, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `help:"What done looks like."`
	Target      string `short:"t" help:"Target date (YYYY-MM-DD)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	target, err := optionalDate(ctx, c.Target)
	if err != nil {
		return err
	}

	goal := models.Goal{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		TargetDate:  target,
	}
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddGoal(ctx.Ctx(), goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}

	ctx.Printf("Added goal: %s (ID: %s)\n", goal.Title, goal.ID)
	return nil
}

type GoalDoneCmd struct {
	ID   string `arg:"" help:"ID of the goal."`
	Date string `help:"Completion date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *GoalDoneCmd) Run(ctx *cli.Context) error {
	goal, err := getGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	if goal.Completed {
		ctx.Printf("Goal %q was already completed on %s.\n", goal.Title, goal.CompletedDate)
		return nil
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.CompleteGoal(ctx.Ctx(), c.ID, date); err != nil {
		return fmt.Errorf("failed to complete goal: %w", err)
	}

	ctx.Printf("Completed goal: %s (%s)\n", goal.Title, date)
	return nil
}

type GoalShowCmd struct {
	ID string `arg:"" help:"ID of the goal."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	goal, err := getGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	milestones, err := ctx.Store.GetMilestones(ctx.Ctx(), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}

	status := "open"
	if goal.Completed {
		status = "completed " + goal.CompletedDate
	}
	ctx.Printf("%s [%s]\n", goal.Title, status)
	if goal.TargetDate != "" {
		ctx.Printf("Target: %s\n", goal.TargetDate)
	}
	if goal.Description != "" {
		ctx.Printf("%s\n", goal.Description)
	}
	for _, m := range milestones {
		mark := "[ ]"
		if m.Completed {
			mark = "[x]"
		}
		ctx.Printf("  %s %d. %s\n", mark, m.Position, m.Title)
	}
	return nil
}

type MilestoneAddCmd struct {
	GoalID string `arg:"" help:"ID of the goal."`
	Title  string `arg:"" help:"Milestone title."`
}

func (c *MilestoneAddCmd) Run(ctx *cli.Context) error {
	title, err := requireText("milestone title", c.Title)
	if err != nil {
		return err
	}
	goal, err := getGoal(ctx, c.GoalID)
	if err != nil {
		return err
	}
	existing, err := ctx.Store.GetMilestones(ctx.Ctx(), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}

	milestone := models.Milestone{
		ID:       uuid.New().String(),
		GoalID:   goal.ID,
		Title:    title,
		Position: len(existing) + 1,
	}
	if err := ctx.Store.AddMilestone(ctx.Ctx(), milestone); err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}

	ctx.Printf("Added milestone %d to %s: %s\n", milestone.Position, goal.Title, milestone.Title)
	return nil
}
