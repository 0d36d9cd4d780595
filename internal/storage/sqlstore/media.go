package sqlstore

import (
	"context"
	"database/sql"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/storage/codec"
)

const mediaColumns = "id, type, title, creator, genres, rating, completed_date"

func scanMedia(row scanner) (models.MediaItem, error) {
	var m models.MediaItem
	var mediaType, genres string
	var rating sql.NullFloat64
	if err := row.Scan(&m.ID, &mediaType, &m.Title, &m.Creator, &genres, &rating, &m.CompletedDate); err != nil {
		return models.MediaItem{}, err
	}
	m.Type = constants.MediaType(mediaType)
	if rating.Valid {
		r := rating.Float64
		m.Rating = &r
	}
	decoded, err := codec.DecodeList(genres)
	if err != nil {
		return models.MediaItem{}, err
	}
	m.Genres = decoded
	return m, nil
}

func (s *Store) AddMedia(ctx context.Context, item models.MediaItem) error {
	ensureID(&item.ID)
	genres, err := codec.EncodeList(item.Genres)
	if err != nil {
		return err
	}
	var rating sql.NullFloat64
	if item.Rating != nil {
		rating = sql.NullFloat64{Float64: *item.Rating, Valid: true}
	}
	_, err = s.exec(ctx, `
		INSERT INTO media (id, type, title, creator, genres, rating, completed_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Type), item.Title, item.Creator, genres, rating, item.CompletedDate, now())
	return err
}

func (s *Store) GetMediaInRange(ctx context.Context, start, end string) ([]models.MediaItem, error) {
	return list(ctx, s, scanMedia,
		"SELECT "+mediaColumns+" FROM media WHERE completed_date >= ? AND completed_date <= ? ORDER BY completed_date, created_at",
		start, end)
}

func (s *Store) GetAllMedia(ctx context.Context) ([]models.MediaItem, error) {
	return list(ctx, s, scanMedia, "SELECT "+mediaColumns+" FROM media ORDER BY completed_date, created_at")
}
