package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone  *string `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	WeekStart *string `help:"First column of calendar grids (sunday or monday)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:   %s\n", settings.Timezone)
		ctx.Printf("  Week Start: %s\n", settings.WeekStart)
		return nil
	}

	changes := map[string]string{}
	if c.Timezone != nil {
		changes[constants.SettingTimezone] = *c.Timezone
	}
	if c.WeekStart != nil {
		changes[constants.SettingWeekStart] = strings.ToLower(*c.WeekStart)
	}
	if len(changes) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	// MapToSettings validates each value it is given
	parsed, err := models.MapToSettings(changes)
	if err != nil {
		return fmt.Errorf("invalid setting: %w", err)
	}
	if parsed.Timezone != "" {
		settings.Timezone = parsed.Timezone
	}
	if parsed.WeekStart != "" {
		settings.WeekStart = parsed.WeekStart
	}

	if err := ctx.Store.SaveSettings(ctx.Ctx(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
