package postgres

import (
	"context"
	"database/sql"

	"eventlistings/internal/domain"
)

type genreRepository struct {
	DB *sql.DB
}

// NewGenreRepository returns a domain.GenreRepository implemented with Postgres.
func NewGenreRepository(db *sql.DB) domain.GenreRepository {
	return &genreRepository{DB: db}
}

func (r *genreRepository) ListWithCounts(ctx context.Context) ([]*domain.Genre, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT g.id, g.name, g.slug, COALESCE(g.icon, ''), COUNT(e.id) AS event_count
		 FROM genres g
		 LEFT JOIN event_genres eg ON eg.genre_id = g.id
		 LEFT JOIN events e ON e.id = eg.event_id AND e.status = $1
		 GROUP BY g.id
		 ORDER BY g.name ASC`, domain.EventStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]*domain.Genre, 0)
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Icon, &g.EventCount); err != nil {
			return nil, err
		}
		genres = append(genres, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
