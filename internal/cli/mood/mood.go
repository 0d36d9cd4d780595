package mood

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/analytics"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/tui"
	"github.com/julianstephens/lifedash/internal/utils"
)

type MoodCmd struct {
	Log    MoodLogCmd    `cmd:"" help:"Record the mood of a day (one per day; logging again replaces it)."`
	Delete MoodDeleteCmd `cmd:"" help:"Remove the mood of a day."`
	Trend  MoodTrendCmd  `cmd:"" help:"Show mood ratings with a trend line and moving average."`
}

type MoodLogCmd struct {
	Rating      int    `arg:"" optional:"" help:"Rating from 1 (awful) to 5 (great)."`
	Date        string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Note        string `short:"n" help:"Optional note."`
	Interactive bool   `short:"i" help:"Pick the rating and note in a form."`
}

func (c *MoodLogCmd) Validate() error {
	if !c.Interactive && c.Rating == 0 {
		return fmt.Errorf("a rating is required unless --interactive is set")
	}
	return nil
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	mood := models.Mood{
		ID:     uuid.New().String(),
		Date:   date,
		Rating: c.Rating,
		Note:   c.Note,
	}

	if c.Interactive {
		input := tui.MoodFormModel{Rating: 3, Note: c.Note}
		if c.Rating != 0 {
			input.Rating = c.Rating
		}
		if err := tui.NewMoodForm(date, &input).Run(); err != nil {
			if stderrors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return fmt.Errorf("mood form failed: %w", err)
		}
		mood.Rating = input.Rating
		mood.Note = strings.TrimSpace(input.Note)
	}

	if err := mood.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveMood(ctx.Ctx(), mood); err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}

	ctx.Printf("Logged mood %d/5 for %s\n", mood.Rating, date)
	return nil
}

type MoodDeleteCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteMood(ctx.Ctx(), date); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("no mood recorded for %s", date)
		}
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	ctx.Printf("Deleted mood for %s\n", date)
	return nil
}

type MoodTrendCmd struct {
	From string `help:"First date (YYYY-MM-DD). Defaults to all history."`
	To   string `help:"Last date (YYYY-MM-DD). Defaults to today when --from is set."`
	JSON bool   `help:"Print the points as JSON."`
}

func (c *MoodTrendCmd) Run(ctx *cli.Context) error {
	moods, err := c.load(ctx)
	if err != nil {
		return err
	}

	points := analytics.MoodTrend(moods)
	if c.JSON {
		return cli.PrintJSON(ctx, points)
	}
	if len(points) == 0 {
		ctx.Println("No moods recorded.")
		return nil
	}

	ctx.Println("Date         Rating  Trend  7-day avg")
	for _, p := range points {
		ctx.Printf("%s   %d     %5.2f  %5.2f  %s\n", p.Date, p.Rating, p.Trend, p.MovingAvg, strings.Repeat("▇", p.Rating))
	}
	first, last := points[0].Trend, points[len(points)-1].Trend
	direction := "flat"
	switch {
	case last-first > 0.05:
		direction = "improving"
	case first-last > 0.05:
		direction = "declining"
	}
	ctx.Printf("\nTrend: %s (%.2f → %.2f over %d entries)\n", direction, first, last, len(points))
	return nil
}

func (c *MoodTrendCmd) load(ctx *cli.Context) ([]models.Mood, error) {
	if c.From == "" && c.To == "" {
		moods, err := ctx.Store.GetAllMoods(ctx.Ctx())
		if err != nil {
			return nil, fmt.Errorf("failed to get moods: %w", err)
		}
		return moods, nil
	}

	to := c.To
	if to == "" {
		today, err := ctx.Today()
		if err != nil {
			return nil, err
		}
		to = today
	}
	if !utils.ValidateDate(c.From) || !utils.ValidateDate(to) {
		return nil, fmt.Errorf("--from and --to must be YYYY-MM-DD")
	}
	moods, err := ctx.Store.GetMoodsInRange(ctx.Ctx(), c.From, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get moods: %w", err)
	}
	return moods, nil
}
