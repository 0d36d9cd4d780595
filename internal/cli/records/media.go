package records

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
)

type MediaCmd struct {
	Add MediaAddCmd `cmd:"" help:"Record a finished book, film, show, game, podcast or album."`
}

type MediaAddCmd struct {
	Title   string   `arg:"" help:"Title."`
	Type    string   `short:"t" help:"Media type (movie|tv|book|game|podcast|music|other)." required:""`
	Creator string   `short:"c" help:"Author, director, studio or artist."`
	Genres  string   `short:"g" help:"Comma-separated genres."`
	Rating  *float64 `short:"r" help:"Rating from 0 to 10."`
	Date    string   `short:"d" help:"Completion date (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *MediaAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	item := models.MediaItem{
		ID:            uuid.New().String(),
		Type:          constants.MediaType(strings.ToLower(c.Type)),
		Title:         c.Title,
		Creator:       c.Creator,
		Genres:        cli.SplitList(c.Genres),
		Rating:        c.Rating,
		CompletedDate: date,
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddMedia(ctx.Ctx(), item); err != nil {
		return fmt.Errorf("failed to add media: %w", err)
	}

	ctx.Printf("Added %s: %s (%s)\n", item.Type, item.Title, date)
	return nil
}
