package system

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/errors"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump every record of a day as JSON."`
	DumpTask     *DebugDumpTaskCmd     `cmd:"" help:"Dump task data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return cli.PrintJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Day to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

type dayDump struct {
	Record  interface{} `json:"record"`
	Dropped int         `json:"dropped"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}

	days, stats, err := ctx.Aggregator.Build(ctx.Ctx(), date, date)
	if err != nil {
		return fmt.Errorf("failed to build day: %w", err)
	}
	return cli.PrintJSON(ctx, dayDump{Record: days[date], Dropped: stats.Dropped})
}

type DebugDumpTaskCmd struct {
	ID string `arg:"" help:"ID of the task to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(ctx.Ctx(), cmd.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("task not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	return cli.PrintJSON(ctx, task)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	return cli.PrintJSON(ctx, settings)
}
