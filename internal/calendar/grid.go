package calendar

import (
	"time"

	"github.com/julianstephens/lifedash/internal/utils"
)

// MonthGrid lays out a month as weeks of seven dates. Cells before the first
// and after the last day of the month are empty strings. weekStart is
// time.Sunday or time.Monday.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) [][]string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7

	var weeks [][]string
	week := make([]string, 7)
	col := lead
	for d := first; d.Month() == month; d = utils.NextDay(d) {
		week[col] = utils.FormatDate(d)
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]string, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// WeekdayHeaders returns two-letter weekday names starting at weekStart.
func WeekdayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:2]
	}
	return headers
}

// ParseWeekStart maps a week_start setting to a weekday. Anything but
// "monday" starts on Sunday.
func ParseWeekStart(value string) time.Weekday {
	if value == "monday" {
		return time.Monday
	}
	return time.Sunday
}
