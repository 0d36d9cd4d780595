package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
)

const moodColumns = "id, date, rating, note"

func scanMood(row scanner) (models.Mood, error) {
	var m models.Mood
	err := row.Scan(&m.ID, &m.Date, &m.Rating, &m.Note)
	return m, err
}

// SaveMood records the mood for a date, replacing any earlier entry for it.
func (s *Store) SaveMood(ctx context.Context, mood models.Mood) error {
	ensureID(&mood.ID)
	_, err := s.exec(ctx, `
		INSERT INTO moods (id, date, rating, note, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET rating = excluded.rating, note = excluded.note`,
		mood.ID, mood.Date, mood.Rating, mood.Note, now())
	return err
}

func (s *Store) DeleteMood(ctx context.Context, date string) error {
	return s.execOne(ctx, "DELETE FROM moods WHERE date = ?", date)
}

func (s *Store) GetMoodsInRange(ctx context.Context, start, end string) ([]models.Mood, error) {
	return list(ctx, s, scanMood,
		"SELECT "+moodColumns+" FROM moods WHERE date >= ? AND date <= ? ORDER BY date, created_at",
		start, end)
}

func (s *Store) GetAllMoods(ctx context.Context) ([]models.Mood, error) {
	return list(ctx, s, scanMood, "SELECT "+moodColumns+" FROM moods ORDER BY date")
}
