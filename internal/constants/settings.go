package constants

const (
	SettingTimezone  = "timezone"
	SettingWeekStart = "week_start"

	DefaultTimezone  = "Local" // Use system local timezone by default
	DefaultWeekStart = "sunday"
)
