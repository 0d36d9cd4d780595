package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
)

const eventColumns = "id, title, date, end_date, all_day, start_time, end_time, location, description"

func scanEvent(row scanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.EndDate, &e.AllDay, &e.StartTime, &e.EndTime, &e.Location, &e.Description)
	return e, err
}

func (s *Store) AddEvent(ctx context.Context, event models.Event) error {
	ensureID(&event.ID)
	_, err := s.exec(ctx, `
		INSERT INTO events (id, title, date, end_date, all_day, start_time, end_time, location, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Date, event.EndDate, event.AllDay, event.StartTime, event.EndTime,
		event.Location, event.Description, now())
	return err
}

// GetEventsInRange returns every event overlapping [start, end]. An event
// without an end date occupies only its start date.
func (s *Store) GetEventsInRange(ctx context.Context, start, end string) ([]models.Event, error) {
	return list(ctx, s, scanEvent, `
		SELECT `+eventColumns+` FROM events
		WHERE date <= ? AND COALESCE(NULLIF(end_date, ''), date) >= ?
		ORDER BY date, start_time, created_at`,
		end, start)
}
