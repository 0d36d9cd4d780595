// Package records holds the commands that write one record into a domain.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/utils"
)

// timestamp turns a date and an optional HH:MM into an RFC3339 timestamp in
// the effective timezone. Without a date it is the current time.
func timestamp(ctx *cli.Context, date, clock string) (string, error) {
	if date == "" && clock == "" {
		now, err := ctx.NowIn()
		if err != nil {
			return "", err
		}
		return now.Format(time.RFC3339), nil
	}

	day, err := ctx.ResolveDate(date)
	if err != nil {
		return "", err
	}
	if clock == "" {
		clock = "00:00"
	}
	loc, err := ctx.Location()
	if err != nil {
		return "", err
	}
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, day+" "+clock, loc)
	if err != nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", clock)
	}
	return t.Format(time.RFC3339), nil
}

func validClock(value string) bool {
	if value == "" {
		return true
	}
	_, err := time.Parse(constants.TimeFormat, value)
	return err == nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", field)
	}
	return value, nil
}

func optionalDate(ctx *cli.Context, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if utils.ValidateDate(value) {
		return value, nil
	}
	return ctx.ResolveDate(value)
}
