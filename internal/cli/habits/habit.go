package habits

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Mark    HabitMarkCmd    `cmd:"" help:"Mark a habit as done for a day."`
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habit status."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit log (ASCII history)."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
}

func findHabit(ctx *cli.Context, name string) (models.Habit, error) {
	habit, err := ctx.Store.GetHabitByName(ctx.Ctx(), name)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q not found", name)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if _, err := ctx.Store.GetHabitByName(ctx.Ctx(), name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddHabit(ctx.Ctx(), habit); err != nil {
		return err
	}

	ctx.Printf("Added habit: %s\n", name)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.Ctx(), c.Archived)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		ctx.Printf("%s%s\n", habit.Name, status)
	}
	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Note string `help:"Optional note for this entry."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}
	if habit.ArchivedAt != nil {
		return fmt.Errorf("habit %q is archived", habit.Name)
	}

	day, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	completion := models.HabitCompletion{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		HabitName: habit.Name,
		Date:      day,
		Note:      c.Note,
	}
	if err := ctx.Store.AddHabitCompletion(ctx.Ctx(), completion); err != nil {
		return err
	}

	ctx.Printf("Marked habit %q for %s\n", habit.Name, day)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.Ctx(), false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	done, err := completedByHabit(ctx, today, today)
	if err != nil {
		return err
	}

	ctx.Printf("Habits for %s:\n\n", today)
	recorded := 0
	for _, habit := range habits {
		status := "[ ]"
		if done[habit.ID][today] {
			status = "[x]"
			recorded++
		}
		ctx.Printf("%s %s\n", status, habit.Name)
	}
	ctx.Printf("\nRecorded: %d/%d\n", recorded, len(habits))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

const logNameWidth = 20

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	var selected []models.Habit
	if c.Habit != "" {
		habit, err := findHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{habit}
	} else {
		habits, err := ctx.Store.GetAllHabits(ctx.Ctx(), false)
		if err != nil {
			return err
		}
		selected = habits
	}
	if len(selected) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	end, err := ctx.Today()
	if err != nil {
		return err
	}
	start, err := utils.AddDays(end, -(c.Days - 1))
	if err != nil {
		return err
	}
	days, err := utils.DateRange(start, end)
	if err != nil {
		return err
	}
	done, err := completedByHabit(ctx, start, end)
	if err != nil {
		return err
	}

	ctx.Printf("Habit log (last %d days):\n\n", c.Days)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", logNameWidth, "Habit"))
	for _, day := range days {
		b.WriteString(" " + day[5:7] + "/" + day[8:10])
	}
	b.WriteString("\n" + strings.Repeat("-", logNameWidth+6*len(days)) + "\n")

	for _, habit := range selected {
		name := habit.Name
		if len(name) > logNameWidth {
			name = name[:logNameWidth-3] + "..."
		}
		b.WriteString(fmt.Sprintf("%-*s", logNameWidth, name))
		for _, day := range days {
			if done[habit.ID][day] {
				b.WriteString("   x  ")
			} else {
				b.WriteString("   .  ")
			}
		}
		b.WriteString("\n")
	}
	ctx.Printf("%s", b.String())
	return nil
}

// completedByHabit indexes completions in [start, end] by habit ID then date.
func completedByHabit(ctx *cli.Context, start, end string) (map[string]map[string]bool, error) {
	completions, err := ctx.Store.GetHabitCompletionsInRange(ctx.Ctx(), start, end)
	if err != nil {
		return nil, err
	}
	done := map[string]map[string]bool{}
	for _, hc := range completions {
		if done[hc.HabitID] == nil {
			done[hc.HabitID] = map[string]bool{}
		}
		done[hc.HabitID][hc.Date] = true
	}
	return done, nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name to archive."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.ArchiveHabit(ctx.Ctx(), habit.ID); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("habit %q is already archived", c.Name)
		}
		return err
	}

	ctx.Printf("Archived habit: %s\n", c.Name)
	return nil
}
