package records

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
)

type EventCmd struct {
	Add EventAddCmd `cmd:"" help:"Add a calendar event."`
}

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Date        string `short:"d" help:"Start date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	EndDate     string `help:"Inclusive end date of a multi-day event (YYYY-MM-DD)."`
	Start       string `short:"s" help:"Start time (HH:MM). Omit for an all-day event."`
	End         string `short:"e" help:"End time (HH:MM)."`
	Location    string `short:"l" help:"Where it happens."`
	Description string `help:"Longer description."`
}

func (c *EventAddCmd) Validate() error {
	if !validClock(c.Start) || !validClock(c.End) {
		return fmt.Errorf("times must be HH:MM")
	}
	if c.End != "" && c.Start == "" {
		return fmt.Errorf("--end requires --start")
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	endDate, err := optionalDate(ctx, c.EndDate)
	if err != nil {
		return err
	}

	event := models.Event{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Date:        date,
		EndDate:     endDate,
		AllDay:      c.Start == "",
		StartTime:   c.Start,
		EndTime:     c.End,
		Location:    c.Location,
		Description: c.Description,
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddEvent(ctx.Ctx(), event); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}

	when := event.Date
	if event.IsMultiDay() {
		when += " to " + event.EndDate
	}
	if !event.AllDay {
		when += " " + event.StartTime
		if event.EndTime != "" {
			when += "-" + event.EndTime
		}
	}
	ctx.Printf("Added event: %s (%s)\n", event.Title, when)
	return nil
}
