package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventlistings/internal/domain"

	"github.com/lib/pq"
)

// eventSelect yields one row per event with genre name/slug/icon aggregated into parallel
// arrays in association order. Events without genres get three empty arrays.
const eventSelect = `
		SELECT e.id, e.title, e.description, e.location, e.lat, e.lng,
			to_char(e.date, 'YYYY-MM-DD'), to_char(e.time, 'HH24:MI'),
			e.age_restriction, e.price, e.image_url, e.status, e.created_by, u.name, e.created_at,
			COALESCE(array_agg(g.name ORDER BY eg.id) FILTER (WHERE g.id IS NOT NULL), '{}') AS genres,
			COALESCE(array_agg(g.slug ORDER BY eg.id) FILTER (WHERE g.id IS NOT NULL), '{}') AS genre_slugs,
			COALESCE(array_agg(COALESCE(g.icon, '') ORDER BY eg.id) FILTER (WHERE g.id IS NOT NULL), '{}') AS genre_icons
		FROM events e
		LEFT JOIN users u ON u.id = e.created_by
		LEFT JOIN event_genres eg ON eg.event_id = e.id
		LEFT JOIN genres g ON g.id = eg.genre_id
`

const eventGroupBy = `GROUP BY e.id, u.name`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	p := compilePredicate(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM events e %s`, p.where)
	var total int
	if err := r.DB.QueryRowContext(ctx, query, p.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return total, nil
}

func (r *eventRepository) FindPage(ctx context.Context, filter domain.EventFilter, sort domain.SortField, order domain.SortOrder, limit, offset int) ([]*domain.Event, error) {
	p := compilePredicate(filter)
	args := p.args
	query := fmt.Sprintf("%s %s\n\t\t%s\n\t\t%s", eventSelect, p.where, eventGroupBy, orderClause(sort, order))
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("page query: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) FindOne(ctx context.Context, id int64) (*domain.Event, error) {
	query := eventSelect + `
		WHERE e.id = $1 AND e.status = $2
		` + eventGroupBy
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, domain.EventStatusPublished))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	return e, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull, dateNull, timeNull, imageNull, creatorNameNull sql.NullString
	var latNull, lngNull sql.NullFloat64
	var ageNull, createdByNull sql.NullInt64
	err := s.Scan(
		&e.ID, &e.Title, &descNull, &locNull, &latNull, &lngNull,
		&dateNull, &timeNull,
		&ageNull, &e.Price, &imageNull, &e.Status, &createdByNull, &creatorNameNull, &e.CreatedAt,
		pq.Array(&e.Genres), pq.Array(&e.GenreSlugs), pq.Array(&e.GenreIcons),
	)
	if err != nil {
		return nil, err
	}
	e.Description = nullString(descNull)
	e.Location = nullString(locNull)
	e.Date = nullString(dateNull)
	e.Time = nullString(timeNull)
	e.ImageURL = nullString(imageNull)
	e.CreatorName = nullString(creatorNameNull)
	if latNull.Valid {
		e.Lat = &latNull.Float64
	}
	if lngNull.Valid {
		e.Lng = &lngNull.Float64
	}
	if ageNull.Valid {
		age := int(ageNull.Int64)
		e.AgeRestriction = &age
	}
	if createdByNull.Valid {
		e.CreatedBy = &createdByNull.Int64
	}
	if e.Genres == nil {
		e.Genres = []string{}
	}
	if e.GenreSlugs == nil {
		e.GenreSlugs = []string{}
	}
	if e.GenreIcons == nil {
		e.GenreIcons = []string{}
	}
	return e, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
