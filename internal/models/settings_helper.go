package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/utils"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			if !utils.ValidateTimezone(value) {
				return Settings{}, fmt.Errorf("parsing timezone: unknown zone %q", value)
			}
			settings.Timezone = value
		case constants.SettingWeekStart:
			ws := strings.ToLower(value)
			if ws != "sunday" && ws != "monday" {
				return Settings{}, fmt.Errorf("parsing week_start: %q (expected sunday or monday)", value)
			}
			settings.WeekStart = ws
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:  settings.Timezone,
		constants.SettingWeekStart: settings.WeekStart,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WeekStart == "" {
		settings.WeekStart = constants.DefaultWeekStart
	}
}
