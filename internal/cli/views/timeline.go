package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/lifedash/internal/analytics"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

type TimelineCmd struct {
	Period string `short:"p" help:"Bucket size (week|month|year)." default:"month"`
	From   string `help:"First completion date (YYYY-MM-DD). Defaults to all history."`
	To     string `help:"Last completion date (YYYY-MM-DD). Defaults to today when --from is set."`
	JSON   bool   `help:"Print the timeline as JSON."`
}

const barWidth = 30

func (c *TimelineCmd) Run(ctx *cli.Context) error {
	period, err := analytics.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	data, err := analytics.BuildTimeline(analytics.FromMedia(items), period)
	if err != nil {
		return err
	}
	if c.JSON {
		return cli.PrintJSON(ctx, data)
	}
	if len(data.Points) == 0 {
		ctx.Println("No media recorded.")
		return nil
	}

	peak := 0
	for _, p := range data.Points {
		if p.Total > peak {
			peak = p.Total
		}
	}
	for _, p := range data.Points {
		bar := strings.Repeat("█", (p.Total*barWidth+peak-1)/peak)
		rating := "   "
		if p.AvgRating != nil {
			rating = fmt.Sprintf("%.1f", *p.AvgRating)
		}
		ctx.Printf("%-8s %3d  %s  %-*s %s\n", p.Label, p.Total, rating, barWidth, bar, typeBreakdown(p.TypeCounts))
	}

	s := data.Stats
	ctx.Println()
	ctx.Printf("Total: %d items, %.1f per %s\n", s.TotalItems, s.AvgPerPeriod, data.Period)
	ctx.Printf("Most active: %s (%d)\n", s.MostActive, s.MostActiveCount)
	ctx.Printf("Top type: %s (%d)\n", s.TopType, s.TopTypeCount)
	ctx.Printf("Trend: %+.1f%%\n", s.Trend)
	if s.SkippedUndatable > 0 {
		ctx.Printf("Skipped %d item(s) without a valid completion date\n", s.SkippedUndatable)
	}
	return nil
}

func (c *TimelineCmd) load(ctx *cli.Context) ([]models.MediaItem, error) {
	if c.From == "" && c.To == "" {
		items, err := ctx.Store.GetAllMedia(ctx.Ctx())
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return items, nil
	}

	to := c.To
	if to == "" {
		today, err := ctx.Today()
		if err != nil {
			return nil, err
		}
		to = today
	}
	if !utils.ValidateDate(c.From) || !utils.ValidateDate(to) {
		return nil, fmt.Errorf("--from and --to must be YYYY-MM-DD")
	}
	items, err := ctx.Store.GetMediaInRange(ctx.Ctx(), c.From, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return items, nil
}

// typeBreakdown lists type counts in priority order, e.g. "book 3, movie 1".
func typeBreakdown(counts map[constants.MediaType]int) string {
	rank := map[constants.MediaType]int{}
	for i, t := range constants.MediaTypePriority {
		rank[t] = i
	}
	types := make([]constants.MediaType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		ri, iok := rank[types[i]]
		rj, jok := rank[types[j]]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return types[i] < types[j]
	})

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s %d", t, counts[t]))
	}
	return strings.Join(parts, ", ")
}
