package records

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
)

type ActivityCmd struct {
	Add ActivityAddCmd `cmd:"" help:"Record a workout or other activity."`
}

type ActivityAddCmd struct {
	Type      string  `arg:"" help:"Activity type (run, ride, lift, hike...)."`
	Title     string  `help:"Display title. Defaults to the type."`
	Date      string  `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to now."`
	At        string  `help:"Start time (HH:MM)."`
	Duration  int     `short:"m" help:"Duration in minutes."`
	Distance  float64 `help:"Distance in kilometres."`
	Calories  int     `help:"Calories burned."`
	Exercises string  `help:"Comma-separated exercises."`
}

func (c *ActivityAddCmd) Validate() error {
	if !validClock(c.At) {
		return fmt.Errorf("--at must be HH:MM")
	}
	if c.Distance < 0 || c.Calories < 0 {
		return fmt.Errorf("distance and calories cannot be negative")
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	start, err := timestamp(ctx, c.Date, c.At)
	if err != nil {
		return err
	}
	title := c.Title
	if title == "" {
		title = c.Type
	}

	activity := models.Activity{
		ID:          uuid.New().String(),
		Type:        c.Type,
		Title:       title,
		StartTime:   start,
		DurationMin: c.Duration,
		DistanceKm:  c.Distance,
		Calories:    c.Calories,
		Exercises:   cli.SplitList(c.Exercises),
	}
	if err := activity.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddActivity(ctx.Ctx(), activity); err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}

	ctx.Printf("Added activity: %s (%s, %d min)\n", activity.Title, activity.Day(), activity.DurationMin)
	return nil
}
