package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/cli/backups"
	"github.com/julianstephens/lifedash/internal/cli/habits"
	"github.com/julianstephens/lifedash/internal/cli/mood"
	"github.com/julianstephens/lifedash/internal/cli/records"
	"github.com/julianstephens/lifedash/internal/cli/settings"
	"github.com/julianstephens/lifedash/internal/cli/system"
	"github.com/julianstephens/lifedash/internal/cli/tasks"
	"github.com/julianstephens/lifedash/internal/cli/views"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path, .json file, PostgreSQL connection string or 'keyring'. PostgreSQL credentials must NOT be embedded in the connection string; use LIFEDASH_DB_CONNECTION, .pgpass or the OS keyring instead." default:"${default_config}" env:"LIFEDASH_CONFIG"`
	Debug    bool   `help:"Mirror debug logs to stderr." env:"LIFEDASH_DEBUG"`
	Timezone string `help:"Override the stored timezone setting for this run." env:"LIFEDASH_TIMEZONE"`

	Init     system.InitCmd     `cmd:"" help:"Initialize lifedash storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Browse the calendar interactively." default:"1"`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored records for conflicts."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether a connection string is stored." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Calendar views.CalendarCmd `cmd:"" help:"Show the month grid or a single day."`
	Timeline views.TimelineCmd `cmd:"" help:"Show finished media bucketed by week, month or year."`

	Mood         mood.MoodCmd            `cmd:"" help:"Log and review moods."`
	Task         tasks.TaskCmd           `cmd:"" help:"Manage tasks."`
	Habit        habits.HabitCmd         `cmd:"" help:"Manage habits and habit tracking."`
	Event        records.EventCmd        `cmd:"" help:"Manage calendar events."`
	Media        records.MediaCmd        `cmd:"" help:"Record finished media."`
	Activity     records.ActivityCmd     `cmd:"" help:"Record workouts and activities."`
	Park         records.ParkCmd         `cmd:"" help:"Record park visits."`
	Journal      records.JournalCmd      `cmd:"" help:"Write journal entries."`
	Goal         records.GoalCmd         `cmd:"" help:"Manage goals."`
	Milestone    records.MilestoneCmd    `cmd:"" help:"Manage goal milestones."`
	Github       records.GithubCmd       `cmd:"" help:"Record GitHub contributions."`
	Relationship records.RelationshipCmd `cmd:"" help:"Record relationship dates, gifts and notes."`
	Meal         records.MealCmd         `cmd:"" help:"Record meals."`
	Duolingo     records.DuolingoCmd     `cmd:"" help:"Track the Duolingo streak."`
}

// commands that open the store themselves
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Life dashboard: one calendar for moods, tasks, events, workouts, media and more"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	command := strings.Fields(ctx.Command())[0]
	if command == "keyring" {
		errors.Fatal(ctx.Run(&cli.Context{}))
		return
	}

	store, err := storage.Open(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store)
	appCtx.Timezone = CLI.Timezone

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}

// configDir is where logs live: next to a file store, or the default config
// directory for PostgreSQL.
func configDir(config string) string {
	if config != constants.KeyringConfigValue && !storage.IsPostgres(config) && os.Getenv(constants.EnvDBConnection) == "" {
		if path, err := storage.ExpandPath(config); err == nil {
			return filepath.Dir(path)
		}
	}
	if path, err := storage.ExpandPath(constants.DefaultConfigPath); err == nil {
		return filepath.Dir(path)
	}
	return "."
}
