package system

import (
	"fmt"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/utils"
	"github.com/julianstephens/lifedash/internal/validation"
)

type ValidateCmd struct {
	Month string `arg:"" optional:"" help:"Month to check (YYYY-MM). Defaults to the current month."`
	From  string `help:"Start of a custom range (YYYY-MM-DD). Overrides the month."`
	To    string `help:"End of a custom range (YYYY-MM-DD)."`
	Fix   bool   `help:"Archive duplicate habits, keeping the oldest of each name."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	start, end, err := c.bounds(ctx)
	if err != nil {
		return err
	}

	days, err := ctx.Aggregator.BuildCalendarMap(ctx.Ctx(), start, end)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	habits, err := ctx.Store.GetAllHabits(ctx.Ctx(), false)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	v := validation.New()
	result := v.ValidateCalendar(days)
	result.Merge(v.ValidateHabits(habits))

	ctx.Printf("Checked %s to %s\n", start, end)
	if !result.HasConflicts() {
		ctx.Println(result.FormatReport())
		return nil
	}
	ctx.Printf("%s", result.FormatReport())

	if !c.Fix {
		ctx.Println("\nRun with --fix to archive duplicate habits.")
		return nil
	}

	actions := validation.AutoFixDuplicateHabits(result.Conflicts, habits, func(id string) error {
		return ctx.Store.ArchiveHabit(ctx.Ctx(), id)
	})
	if len(actions) == 0 {
		ctx.Println("\nNothing could be fixed automatically.")
		return nil
	}
	ctx.Println("\nFixes applied:")
	for _, a := range actions {
		ctx.Printf("- %s\n", a.Action)
	}
	return nil
}

func (c *ValidateCmd) bounds(ctx *cli.Context) (string, string, error) {
	if c.From != "" || c.To != "" {
		if !utils.ValidateDate(c.From) || !utils.ValidateDate(c.To) {
			return "", "", fmt.Errorf("--from and --to must both be YYYY-MM-DD")
		}
		if c.To < c.From {
			return "", "", fmt.Errorf("--to %s is before --from %s", c.To, c.From)
		}
		return c.From, c.To, nil
	}
	year, month, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return "", "", err
	}
	start, end := utils.MonthBounds(year, month)
	return start, end, nil
}
