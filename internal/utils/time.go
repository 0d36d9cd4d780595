package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifedash/internal/constants"
)

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that calendar day.
// UTC has no DST transitions, so stepping the result never skips or repeats a day.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, dateStr)
	}
	return t, nil
}

// FormatDate formats the calendar day of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ValidateDate reports whether dateStr is a valid YYYY-MM-DD date.
func ValidateDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// DatePart returns the YYYY-MM-DD prefix of a date or timestamp string such as
// "2024-03-10T18:30:00Z" or "2024-03-10 18:30". It returns "" when the prefix
// is not a valid date.
func DatePart(value string) string {
	if len(value) < constants.DateLen {
		return ""
	}
	prefix := value[:constants.DateLen]
	if !ValidateDate(prefix) {
		return ""
	}
	return prefix
}

// NextDay advances a date-only value by exactly one calendar day.
func NextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return FormatDate(time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, time.UTC)), nil
}

// DateRange returns every date in [start, end] inclusive. A start after end
// yields an empty slice.
func DateRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	dates := []string{}
	for d := from; !d.After(to); d = NextDay(d) {
		dates = append(dates, FormatDate(d))
	}
	return dates, nil
}

// MonthBounds returns the first and last date of a calendar month.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return FormatDate(first), FormatDate(last)
}

// ParseMonth parses a YYYY-MM month identifier.
func ParseMonth(monthStr string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, monthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", monthStr, err)
	}
	return t.Year(), t.Month(), nil
}
