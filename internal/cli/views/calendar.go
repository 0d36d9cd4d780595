package views

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifedash/internal/calendar"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/tui"
)

type CalendarCmd struct {
	Month CalendarMonthCmd `cmd:"" help:"Show a month grid with totals." default:"1"`
	Day   CalendarDayCmd   `cmd:"" help:"Show everything recorded on a day."`
}

type CalendarMonthCmd struct {
	Month string `arg:"" optional:"" help:"Month (YYYY-MM). Defaults to the current month."`
	JSON  bool   `help:"Print day summaries and totals as JSON."`
}

type monthDump struct {
	Month   string                `json:"month"`
	Days    []calendar.DaySummary `json:"days"`
	Totals  calendar.MonthTotals  `json:"totals"`
	Dropped int                   `json:"dropped"`
}

func (c *CalendarMonthCmd) Run(ctx *cli.Context) error {
	year, month, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	days, err := ctx.Aggregator.BuildMonth(ctx.Ctx(), year, month)
	if err != nil {
		return fmt.Errorf("failed to build month: %w", err)
	}
	if dropped := ctx.Aggregator.LastStats().Dropped; dropped > 0 {
		logger.Warn("Records outside their day were skipped", "count", dropped)
	}

	summaries := calendar.SummarizeMonth(days, today)
	totals := calendar.AggregateMonth(days)

	if c.JSON {
		dump := monthDump{
			Month:   fmt.Sprintf("%04d-%02d", year, month),
			Days:    make([]calendar.DaySummary, 0, len(summaries)),
			Totals:  totals,
			Dropped: ctx.Aggregator.LastStats().Dropped,
		}
		for _, date := range days.Dates() {
			dump.Days = append(dump.Days, summaries[date])
		}
		return cli.PrintJSON(ctx, dump)
	}

	ctx.Printf("%s %d\n\n", month, year)
	ctx.Println(tui.RenderMonth(tui.GridOptions{
		Year:      year,
		Month:     month,
		WeekStart: calendar.ParseWeekStart(settings.WeekStart),
		Today:     today,
	}, summaries))
	ctx.Println()
	ctx.Println(tui.RenderTotals(totals))
	return nil
}

type CalendarDayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	JSON bool   `help:"Print the full day record as JSON."`
}

func (c *CalendarDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	days, err := ctx.Aggregator.BuildCalendarMap(ctx.Ctx(), date, date)
	if err != nil {
		return fmt.Errorf("failed to build day: %w", err)
	}
	record := days[date]

	if c.JSON {
		return cli.PrintJSON(ctx, record)
	}

	ctx.Println(tui.RenderDay(calendar.SummarizeDay(record, today)))
	if details := dayDetails(record); details != "" {
		ctx.Println()
		ctx.Printf("%s", details)
	}
	return nil
}

// dayDetails lists every record of a day, one line each.
func dayDetails(d *models.DayRecord) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, "  "+format+"\n", args...)
	}

	if d.Mood != nil && d.Mood.Note != "" {
		line("mood note: %s", d.Mood.Note)
	}
	for _, e := range d.Events {
		switch {
		case e.IsMultiDay():
			line("event     %s (%s to %s)", e.Title, e.Date, e.EndDate)
		case e.AllDay || e.StartTime == "":
			line("event     %s (all day)", e.Title)
		default:
			line("event     %s-%s %s", e.StartTime, e.EndTime, e.Title)
		}
	}
	for _, t := range d.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line("task      %s %s", mark, t.Title)
	}
	for _, a := range d.Activities {
		line("activity  %s, %d min", a.Title, a.DurationMin)
	}
	for _, m := range d.Media {
		line("media     %s [%s]", m.Title, m.Type)
	}
	for _, p := range d.Parks {
		line("park      %s", p.Name)
	}
	for _, j := range d.Journals {
		line("journal   %s", j.Title)
	}
	for _, g := range d.GoalsCompleted {
		line("goal      %s", g.Title)
	}
	for _, h := range d.HabitCompletions {
		line("habit     %s", h.HabitName)
	}
	for _, g := range d.GithubEvents {
		line("github    %s %s %s", g.Type, g.Repo, g.Title)
	}
	for _, r := range d.RelationshipItems {
		line("%-9s %s", r.Type, r.Title)
	}
	for _, m := range d.DailyMeals {
		line("%-9s %s", m.MealType, m.Name)
	}
	return b.String()
}
