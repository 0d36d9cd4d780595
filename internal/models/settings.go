package models

// Settings represents application-wide settings
type Settings struct {
	Timezone  string `json:"timezone"`   // IANA timezone name, or "Local" for system timezone
	WeekStart string `json:"week_start"` // "sunday" or "monday", first column of calendar grids
}
