package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/lifedash/internal/backup"
	"github.com/julianstephens/lifedash/internal/calendar"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
	"github.com/julianstephens/lifedash/internal/utils"
)

type Context struct {
	Store      storage.Provider
	Aggregator *calendar.Aggregator
	// Timezone overrides the stored timezone setting when non-empty.
	Timezone string
	// Out receives command output; nil means stdout.
	Out io.Writer
	// In answers confirmation prompts; nil means stdin.
	In io.Reader
	// Now replaces the wall clock in tests.
	Now func() time.Time
}

// NewContext wires a store into a command context.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:      store,
		Aggregator: calendar.NewAggregator(store),
	}
}

// Ctx returns the context for store calls.
func (c *Context) Ctx() context.Context {
	return context.Background()
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Confirm asks a yes/no question and defaults to no.
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored settings with the --timezone override applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings(c.Ctx())
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if c.Timezone != "" {
		if !utils.ValidateTimezone(c.Timezone) {
			return models.Settings{}, fmt.Errorf("invalid timezone: %s", c.Timezone)
		}
		settings.Timezone = c.Timezone
	}
	return settings, nil
}

// Location returns the effective timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return utils.LoadLocation(settings.Timezone)
}

// NowIn returns the current time in the effective timezone.
func (c *Context) NowIn() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(loc), nil
}

// Today returns today's date (YYYY-MM-DD) in the effective timezone.
func (c *Context) Today() (string, error) {
	now, err := c.NowIn()
	if err != nil {
		return "", err
	}
	return utils.FormatDate(now), nil
}

// ResolveDate accepts YYYY-MM-DD, "today", "yesterday" or "" (today).
func (c *Context) ResolveDate(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return c.Today()
	case "yesterday":
		today, err := c.Today()
		if err != nil {
			return "", err
		}
		return utils.AddDays(today, -1)
	}
	if !utils.ValidateDate(value) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD, 'today' or 'yesterday')", value)
	}
	return value, nil
}

// ResolveMonth accepts YYYY-MM or "" (the current month).
func (c *Context) ResolveMonth(value string) (int, time.Month, error) {
	if value == "" {
		now, err := c.NowIn()
		if err != nil {
			return 0, 0, err
		}
		return now.Year(), now.Month(), nil
	}
	return utils.ParseMonth(value)
}

// PerformAutomaticBackup snapshots a SQLite database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := os.Stat(store.GetConfigPath()); err != nil {
		return
	}
	mgr := backup.NewManager(store.GetConfigPath())
	if _, err := mgr.CreateBackup(c.Ctx()); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(c *Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.Println(string(jsonBytes))
	return nil
}

// SplitList parses a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
