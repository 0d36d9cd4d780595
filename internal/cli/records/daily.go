package records

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/models"
)

type ParkCmd struct {
	Add ParkAddCmd `cmd:"" help:"Record a park visit."`
}

type ParkAddCmd struct {
	Name     string `arg:"" help:"Park name."`
	Date     string `short:"d" help:"Visit date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Location string `short:"l" help:"Where the park is."`
	Notes    string `short:"n" help:"Notes."`
}

func (c *ParkAddCmd) Run(ctx *cli.Context) error {
	name, err := requireText("park name", c.Name)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	park := models.Park{ID: uuid.New().String(), Name: name, Date: date, Location: c.Location, Notes: c.Notes}
	if err := ctx.Store.AddPark(ctx.Ctx(), park); err != nil {
		return fmt.Errorf("failed to add park visit: %w", err)
	}
	ctx.Printf("Added park visit: %s (%s)\n", park.Name, date)
	return nil
}

type JournalCmd struct {
	Add JournalAddCmd `cmd:"" help:"Write a journal entry."`
}

type JournalAddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `arg:"" optional:"" help:"Entry text."`
	Date    string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Tags    string `short:"t" help:"Comma-separated tags."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	title, err := requireText("journal title", c.Title)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	journal := models.Journal{
		ID:      uuid.New().String(),
		Date:    date,
		Title:   title,
		Content: c.Content,
		Tags:    cli.SplitList(c.Tags),
	}
	if err := ctx.Store.AddJournal(ctx.Ctx(), journal); err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	ctx.Printf("Added journal entry: %s (%s)\n", journal.Title, date)
	return nil
}

type GithubCmd struct {
	Add GithubAddCmd `cmd:"" help:"Record a GitHub contribution."`
}

type GithubAddCmd struct {
	Type  string `arg:"" help:"Event type (push, pull_request, issue, review, release...)."`
	Repo  string `arg:"" help:"Repository (owner/name)."`
	Title string `help:"Commit message, PR or issue title."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to now."`
	At    string `help:"Time of the event (HH:MM)."`
}

func (c *GithubAddCmd) Run(ctx *cli.Context) error {
	if !validClock(c.At) {
		return fmt.Errorf("--at must be HH:MM")
	}
	repo, err := requireText("repository", c.Repo)
	if err != nil {
		return err
	}
	if !strings.Contains(repo, "/") {
		return fmt.Errorf("repository must look like owner/name, got %q", repo)
	}
	createdAt, err := timestamp(ctx, c.Date, c.At)
	if err != nil {
		return err
	}

	event := models.GithubEvent{
		ID:        uuid.New().String(),
		Type:      strings.ToLower(c.Type),
		Repo:      repo,
		Title:     c.Title,
		CreatedAt: createdAt,
	}
	if err := ctx.Store.AddGithubEvent(ctx.Ctx(), event); err != nil {
		return fmt.Errorf("failed to add github event: %w", err)
	}
	ctx.Printf("Added %s on %s (%s)\n", event.Type, event.Repo, event.Day())
	return nil
}

var relationshipTypes = []string{"date", "gift", "milestone", "note"}

type RelationshipCmd struct {
	Add RelationshipAddCmd `cmd:"" help:"Record a relationship item."`
}

type RelationshipAddCmd struct {
	Type  string `arg:"" help:"Item type (date|gift|milestone|note)."`
	Title string `arg:"" help:"Title."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Notes string `short:"n" help:"Notes."`
}

func (c *RelationshipAddCmd) Validate() error {
	for _, t := range relationshipTypes {
		if strings.EqualFold(c.Type, t) {
			return nil
		}
	}
	return fmt.Errorf("unknown relationship item type %q (expected one of %s)", c.Type, strings.Join(relationshipTypes, ", "))
}

func (c *RelationshipAddCmd) Run(ctx *cli.Context) error {
	title, err := requireText("title", c.Title)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	item := models.RelationshipItem{
		ID:    uuid.New().String(),
		Type:  strings.ToLower(c.Type),
		Title: title,
		Date:  date,
		Notes: c.Notes,
	}
	if err := ctx.Store.AddRelationshipItem(ctx.Ctx(), item); err != nil {
		return fmt.Errorf("failed to add relationship item: %w", err)
	}
	ctx.Printf("Added %s: %s (%s)\n", item.Type, item.Title, date)
	return nil
}

var mealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type MealCmd struct {
	Add MealAddCmd `cmd:"" help:"Record a meal."`
}

type MealAddCmd struct {
	Type     string `arg:"" help:"Meal type (breakfast|lunch|dinner|snack)."`
	Name     string `arg:"" help:"What was eaten."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	Calories int    `short:"c" help:"Calories."`
}

func (c *MealAddCmd) Validate() error {
	if c.Calories < 0 {
		return fmt.Errorf("calories cannot be negative")
	}
	for _, t := range mealTypes {
		if strings.EqualFold(c.Type, t) {
			return nil
		}
	}
	return fmt.Errorf("unknown meal type %q (expected one of %s)", c.Type, strings.Join(mealTypes, ", "))
}

func (c *MealAddCmd) Run(ctx *cli.Context) error {
	name, err := requireText("meal name", c.Name)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	meal := models.Meal{
		ID:       uuid.New().String(),
		Date:     date,
		MealType: strings.ToLower(c.Type),
		Name:     name,
		Calories: c.Calories,
	}
	if err := ctx.Store.AddMeal(ctx.Ctx(), meal); err != nil {
		return fmt.Errorf("failed to add meal: %w", err)
	}
	ctx.Printf("Added %s: %s (%s)\n", meal.MealType, meal.Name, date)
	return nil
}

type DuolingoCmd struct {
	Mark DuolingoMarkCmd `cmd:"" help:"Mark the Duolingo lesson of a day."`
}

type DuolingoMarkCmd struct {
	Date   string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
	XP     int    `help:"XP earned."`
	Missed bool   `help:"Record the day as missed instead."`
}

func (c *DuolingoMarkCmd) Run(ctx *cli.Context) error {
	if c.XP < 0 {
		return fmt.Errorf("xp cannot be negative")
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	day := models.DuolingoDay{
		ID:        uuid.New().String(),
		Date:      date,
		Completed: !c.Missed,
		XP:        c.XP,
	}
	if err := ctx.Store.SaveDuolingoDay(ctx.Ctx(), day); err != nil {
		return fmt.Errorf("failed to save duolingo day: %w", err)
	}

	if day.Completed {
		ctx.Printf("Marked Duolingo done for %s\n", date)
	} else {
		ctx.Printf("Marked Duolingo missed for %s\n", date)
	}
	return nil
}
