package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event statuses. Only published events are visible through public search.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
)

// Event represents a listed event with its creator name and genre associations collapsed
// into three parallel slices (Genres[i], GenreSlugs[i] and GenreIcons[i] describe the same genre).
// swagger:model Event
type Event struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Description    *string         `json:"description"`
	Location       *string         `json:"location"`
	Lat            *float64        `json:"lat"`
	Lng            *float64        `json:"lng"`
	Date           *string         `json:"date"`
	Time           *string         `json:"time"`
	AgeRestriction *int            `json:"age_restriction"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       *string         `json:"image_url"`
	Status         string          `json:"status"`
	CreatedBy      *int64          `json:"created_by"`
	CreatorName    *string         `json:"creator_name"`
	CreatedAt      time.Time       `json:"created_at"`
	Genres         []string        `json:"genres"`
	GenreSlugs     []string        `json:"genre_slugs"`
	GenreIcons     []string        `json:"genre_icons"`
	DistanceKm     *float64        `json:"distance_km,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (e *Event) HasCoordinates() bool {
	return e.Lat != nil && e.Lng != nil
}

// EventRepository defines read access to the events relation joined with genres and creators.
type EventRepository interface {
	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter EventFilter) (int, error)
	// FindPage returns one event per matching row in the given order. A limit <= 0 returns every match.
	FindPage(ctx context.Context, filter EventFilter, sort SortField, order SortOrder, limit, offset int) ([]*Event, error)
	// FindOne returns a single published event, or ErrNotFound.
	FindOne(ctx context.Context, id int64) (*Event, error)
}

// EventSearchService defines the public search and listing operations.
type EventSearchService interface {
	Search(ctx context.Context, auth AuthContext, q *SearchQuery) (*SearchResult, error)
	ListAllEvents(ctx context.Context, auth AuthContext, q *SearchQuery) (*SearchResult, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListGenres(ctx context.Context) ([]*Genre, error)
}
