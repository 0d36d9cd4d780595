package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifedash/internal/backup"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/keyring"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
	"github.com/julianstephens/lifedash/internal/utils"
	"github.com/julianstephens/lifedash/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks never fail the run
	warnOnly bool
	// needsDB checks are skipped when the store cannot be loaded
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'lifedash migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q", settings.Timezone)
	}
	return nil
}

// checkValidation runs the record integrity checks over the current month and
// every active habit.
func checkValidation(ctx *cli.Context) error {
	year, month, err := ctx.ResolveMonth("")
	if err != nil {
		return err
	}
	days, err := ctx.Aggregator.BuildMonth(ctx.Ctx(), year, month)
	if err != nil {
		return fmt.Errorf("failed to load current month: %w", err)
	}
	habits, err := ctx.Store.GetAllHabits(ctx.Ctx(), false)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	v := validation.New()
	result := v.ValidateCalendar(days)
	result.Merge(v.ValidateHabits(habits))
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found (run 'lifedash validate' for details)", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("backups are only managed for SQLite storage")
	}
	backups, err := backup.NewManager(store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'lifedash backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from %s or .pgpass", constants.EnvDBConnection)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now, err := ctx.NowIn()
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
