package analytics

import (
	"sort"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

// MoodTrendPoint is one mood entry with its fitted trend value and trailing
// moving average.
type MoodTrendPoint struct {
	Date      string  `json:"date"`
	Rating    int     `json:"rating"`
	Trend     float64 `json:"trend"`
	MovingAvg float64 `json:"moving_avg"`
}

// MoodTrend fits an ordinary least-squares line over (date, rating) and
// pairs each entry with the fitted value and the mean of up to the last
// constants.MoodMovingAverageWindow entries. Entries with unparsable dates
// are ignored. When every entry shares one date the line is flat at the mean.
func MoodTrend(moods []models.Mood) []MoodTrendPoint {
	type sample struct {
		mood models.Mood
		x    float64
	}
	samples := make([]sample, 0, len(moods))
	for _, m := range moods {
		t, err := utils.ParseDate(m.Date)
		if err != nil {
			continue
		}
		samples = append(samples, sample{mood: m, x: float64(t.Unix())})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].mood.Date < samples[j].mood.Date })

	points := make([]MoodTrendPoint, len(samples))
	if len(samples) == 0 {
		return points
	}

	n := float64(len(samples))
	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.x
		sumY += float64(s.mood.Rating)
	}
	meanX, meanY := sumX/n, sumY/n

	// centered sums keep unix-second magnitudes from swamping the variance
	var sxx, sxy float64
	for _, s := range samples {
		dx := s.x - meanX
		sxx += dx * dx
		sxy += dx * (float64(s.mood.Rating) - meanY)
	}
	slope := 0.0
	if sxx != 0 {
		slope = sxy / sxx
	}

	window := constants.MoodMovingAverageWindow
	running := 0.0
	for i, s := range samples {
		running += float64(s.mood.Rating)
		if i >= window {
			running -= float64(samples[i-window].mood.Rating)
		}
		size := i + 1
		if size > window {
			size = window
		}
		points[i] = MoodTrendPoint{
			Date:      s.mood.Date,
			Rating:    s.mood.Rating,
			Trend:     meanY + slope*(s.x-meanX),
			MovingAvg: running / float64(size),
		}
	}
	return points
}
