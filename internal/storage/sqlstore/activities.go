package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/codec"
)

const activityColumns = "id, type, title, start_time, duration_min, distance_km, calories, exercises"

func scanActivity(row scanner) (models.Activity, error) {
	var a models.Activity
	var exercises string
	if err := row.Scan(&a.ID, &a.Type, &a.Title, &a.StartTime, &a.DurationMin, &a.DistanceKm, &a.Calories, &exercises); err != nil {
		return models.Activity{}, err
	}
	decoded, err := codec.DecodeList(exercises)
	if err != nil {
		return models.Activity{}, err
	}
	a.Exercises = decoded
	return a, nil
}

func (s *Store) AddActivity(ctx context.Context, activity models.Activity) error {
	ensureID(&activity.ID)
	exercises, err := codec.EncodeList(activity.Exercises)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, `
		INSERT INTO activities (id, type, title, start_time, duration_min, distance_km, calories, exercises, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Type, activity.Title, activity.StartTime, activity.DurationMin,
		activity.DistanceKm, activity.Calories, exercises, now())
	return err
}

// GetActivitiesInRange matches on the date portion of start_time.
func (s *Store) GetActivitiesInRange(ctx context.Context, start, end string) ([]models.Activity, error) {
	return list(ctx, s, scanActivity, `
		SELECT `+activityColumns+` FROM activities
		WHERE substr(start_time, 1, 10) >= ? AND substr(start_time, 1, 10) <= ?
		ORDER BY start_time, created_at`,
		start, end)
}
