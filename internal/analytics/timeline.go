// Package analytics buckets completed media into calendar periods and fits
// trend lines over mood ratings.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

// ErrInvalidPeriod is returned for a period other than week, month or year.
var ErrInvalidPeriod = errors.New("invalid period")

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q (expected week, month or year)", ErrInvalidPeriod, s)
	}
}

// TimelineRecord is one completed item placed on the timeline.
type TimelineRecord struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Type          constants.MediaType `json:"type"`
	CompletedDate string              `json:"completed_date"`
	Rating        *float64            `json:"rating,omitempty"`
}

// FromMedia converts media items to timeline records.
func FromMedia(items []models.MediaItem) []TimelineRecord {
	out := make([]TimelineRecord, 0, len(items))
	for _, m := range items {
		out = append(out, TimelineRecord{
			ID:            m.ID,
			Title:         m.Title,
			Type:          m.Type,
			CompletedDate: m.CompletedDate,
			Rating:        m.Rating,
		})
	}
	return out
}

// TimelineDataPoint is one non-empty period.
type TimelineDataPoint struct {
	Label      string                      `json:"label"` // 2024-W05, 2024-06 or 2024
	Start      string                      `json:"start"` // first date of the period
	Total      int                         `json:"total"`
	TypeCounts map[constants.MediaType]int `json:"type_counts"`
	AvgRating  *float64                    `json:"avg_rating,omitempty"`
	Items      []TimelineRecord            `json:"items"`
}

type TimelineStats struct {
	AvgPerPeriod     float64             `json:"avg_per_period"`
	MostActive       string              `json:"most_active"`
	MostActiveCount  int                 `json:"most_active_count"`
	TopType          constants.MediaType `json:"top_type"`
	TopTypeCount     int                 `json:"top_type_count"`
	Trend            float64             `json:"trend"` // percent change, second half vs first half
	TotalItems       int                 `json:"total_items"`
	SkippedUndatable int                 `json:"skipped_undatable"`
}

type TimelineData struct {
	Period Period              `json:"period"`
	Points []TimelineDataPoint `json:"points"`
	Stats  TimelineStats       `json:"stats"`
}

// bucketOf returns the label and first date of the period containing t.
func bucketOf(t time.Time, period Period) (string, time.Time) {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		offset := (int(t.Weekday()) + 6) % 7 // days since Monday
		return fmt.Sprintf("%d-W%02d", year, week), time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	case PeriodMonth:
		return t.Format(constants.MonthFormat), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return fmt.Sprintf("%d", t.Year()), time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// BuildTimeline groups records into calendar periods and summarizes them.
// Only periods holding at least one record are returned, oldest first.
// Records whose completion date cannot be parsed are skipped.
func BuildTimeline(records []TimelineRecord, period Period) (TimelineData, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return TimelineData{}, err
	}

	data := TimelineData{Period: period, Points: []TimelineDataPoint{}}
	byLabel := map[string]*TimelineDataPoint{}
	ratingSums := map[string]float64{}
	ratingCounts := map[string]int{}

	for _, r := range records {
		t, err := utils.ParseDate(utils.DatePart(r.CompletedDate))
		if err != nil {
			data.Stats.SkippedUndatable++
			continue
		}
		label, start := bucketOf(t, period)
		p, ok := byLabel[label]
		if !ok {
			p = &TimelineDataPoint{
				Label:      label,
				Start:      utils.FormatDate(start),
				TypeCounts: map[constants.MediaType]int{},
				Items:      []TimelineRecord{},
			}
			byLabel[label] = p
		}
		p.Total++
		p.TypeCounts[r.Type]++
		p.Items = append(p.Items, r)
		if r.Rating != nil {
			ratingSums[label] += *r.Rating
			ratingCounts[label]++
		}
	}

	for label, p := range byLabel {
		if n := ratingCounts[label]; n > 0 {
			avg := ratingSums[label] / float64(n)
			p.AvgRating = &avg
		}
		data.Points = append(data.Points, *p)
	}
	sort.Slice(data.Points, func(i, j int) bool {
		return data.Points[i].Start < data.Points[j].Start
	})

	data.Stats = computeStats(data.Points, data.Stats.SkippedUndatable)
	return data, nil
}

func computeStats(points []TimelineDataPoint, skipped int) TimelineStats {
	stats := TimelineStats{SkippedUndatable: skipped}
	if len(points) == 0 {
		return stats
	}

	typeTotals := map[constants.MediaType]int{}
	for _, p := range points {
		stats.TotalItems += p.Total
		// strict comparison keeps the earliest bucket on ties
		if p.Total > stats.MostActiveCount {
			stats.MostActive = p.Label
			stats.MostActiveCount = p.Total
		}
		for typ, n := range p.TypeCounts {
			typeTotals[typ] += n
		}
	}
	stats.AvgPerPeriod = float64(stats.TotalItems) / float64(len(points))
	stats.TopType, stats.TopTypeCount = topType(typeTotals)
	stats.Trend = trend(points)
	return stats
}

// topType picks the type with the highest count. Ties go to the type listed
// first in constants.MediaTypePriority; unknown types rank after known ones
// in name order.
func topType(totals map[constants.MediaType]int) (constants.MediaType, int) {
	order := append([]constants.MediaType{}, constants.MediaTypePriority...)
	var unknown []constants.MediaType
	for typ := range totals {
		if !constants.IsValidMediaType(typ) {
			unknown = append(unknown, typ)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	order = append(order, unknown...)

	var best constants.MediaType
	bestCount := 0
	for _, typ := range order {
		if n := totals[typ]; n > bestCount {
			best, bestCount = typ, n
		}
	}
	return best, bestCount
}

// trend compares the mean bucket total of the second half against the first
// half as a percentage. An odd middle bucket belongs to the second half.
func trend(points []TimelineDataPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	mid := len(points) / 2
	first := meanTotal(points[:mid])
	second := meanTotal(points[mid:])
	if first == 0 {
		return 0
	}
	return (second - first) / first * 100
}

func meanTotal(points []TimelineDataPoint) float64 {
	sum := 0
	for _, p := range points {
		sum += p.Total
	}
	return float64(sum) / float64(len(points))
}
