package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/codec"
)

func (s *Store) AddPark(ctx context.Context, park models.Park) error {
	ensureID(&park.ID)
	_, err := s.exec(ctx, "INSERT INTO parks (id, name, date, location, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		park.ID, park.Name, park.Date, park.Location, park.Notes, now())
	return err
}

func (s *Store) GetParksInRange(ctx context.Context, start, end string) ([]models.Park, error) {
	return list(ctx, s, func(row scanner) (models.Park, error) {
		var p models.Park
		err := row.Scan(&p.ID, &p.Name, &p.Date, &p.Location, &p.Notes)
		return p, err
	}, "SELECT id, name, date, location, notes FROM parks WHERE date >= ? AND date <= ? ORDER BY date, created_at",
		start, end)
}

func (s *Store) AddJournal(ctx context.Context, journal models.Journal) error {
	ensureID(&journal.ID)
	tags, err := codec.EncodeList(journal.Tags)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, "INSERT INTO journals (id, date, title, content, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		journal.ID, journal.Date, journal.Title, journal.Content, tags, now())
	return err
}

func (s *Store) GetJournalsInRange(ctx context.Context, start, end string) ([]models.Journal, error) {
	return list(ctx, s, func(row scanner) (models.Journal, error) {
		var j models.Journal
		var tags string
		if err := row.Scan(&j.ID, &j.Date, &j.Title, &j.Content, &tags); err != nil {
			return models.Journal{}, err
		}
		decoded, err := codec.DecodeList(tags)
		if err != nil {
			return models.Journal{}, err
		}
		j.Tags = decoded
		return j, nil
	}, "SELECT id, date, title, content, tags FROM journals WHERE date >= ? AND date <= ? ORDER BY date, created_at",
		start, end)
}

func (s *Store) AddGithubEvent(ctx context.Context, event models.GithubEvent) error {
	ensureID(&event.ID)
	if event.CreatedAt == "" {
		event.CreatedAt = now()
	}
	_, err := s.exec(ctx, "INSERT INTO github_events (id, type, repo, title, created_at) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Repo, event.Title, event.CreatedAt)
	return err
}

// GetGithubEventsInRange matches on the date portion of created_at.
func (s *Store) GetGithubEventsInRange(ctx context.Context, start, end string) ([]models.GithubEvent, error) {
	return list(ctx, s, func(row scanner) (models.GithubEvent, error) {
		var g models.GithubEvent
		err := row.Scan(&g.ID, &g.Type, &g.Repo, &g.Title, &g.CreatedAt)
		return g, err
	}, `
		SELECT id, type, repo, title, created_at FROM github_events
		WHERE substr(created_at, 1, 10) >= ? AND substr(created_at, 1, 10) <= ?
		ORDER BY created_at`,
		start, end)
}

func (s *Store) AddRelationshipItem(ctx context.Context, item models.RelationshipItem) error {
	ensureID(&item.ID)
	_, err := s.exec(ctx, "INSERT INTO relationship_items (id, type, title, date, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.Type, item.Title, item.Date, item.Notes, now())
	return err
}

func (s *Store) GetRelationshipItemsInRange(ctx context.Context, start, end string) ([]models.RelationshipItem, error) {
	return list(ctx, s, func(row scanner) (models.RelationshipItem, error) {
		var r models.RelationshipItem
		err := row.Scan(&r.ID, &r.Type, &r.Title, &r.Date, &r.Notes)
		return r, err
	}, "SELECT id, type, title, date, notes FROM relationship_items WHERE date >= ? AND date <= ? ORDER BY date, created_at",
		start, end)
}

func (s *Store) AddMeal(ctx context.Context, meal models.Meal) error {
	ensureID(&meal.ID)
	_, err := s.exec(ctx, "INSERT INTO meals (id, date, meal_type, name, calories, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		meal.ID, meal.Date, meal.MealType, meal.Name, meal.Calories, now())
	return err
}

func (s *Store) GetMealsInRange(ctx context.Context, start, end string) ([]models.Meal, error) {
	return list(ctx, s, func(row scanner) (models.Meal, error) {
		var m models.Meal
		err := row.Scan(&m.ID, &m.Date, &m.MealType, &m.Name, &m.Calories)
		return m, err
	}, "SELECT id, date, meal_type, name, calories FROM meals WHERE date >= ? AND date <= ? ORDER BY date, created_at",
		start, end)
}

// SaveDuolingoDay records the lesson status for a date, replacing any earlier entry.
func (s *Store) SaveDuolingoDay(ctx context.Context, day models.DuolingoDay) error {
	ensureID(&day.ID)
	_, err := s.exec(ctx, `
		INSERT INTO duolingo_days (id, date, completed, xp, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET completed = excluded.completed, xp = excluded.xp`,
		day.ID, day.Date, day.Completed, day.XP, now())
	return err
}

func (s *Store) GetDuolingoInRange(ctx context.Context, start, end string) ([]models.DuolingoDay, error) {
	return list(ctx, s, func(row scanner) (models.DuolingoDay, error) {
		var d models.DuolingoDay
		err := row.Scan(&d.ID, &d.Date, &d.Completed, &d.XP)
		return d, err
	}, "SELECT id, date, completed, xp FROM duolingo_days WHERE date >= ? AND date <= ? ORDER BY date",
		start, end)
}
