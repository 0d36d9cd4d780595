package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Aggregator, ctx.Store, settings, today), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("calendar browser exited: %w", err)
	}
	return nil
}
