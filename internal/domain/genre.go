package domain

import "context"

// Genre is a category events can be tagged with.
// swagger:model Genre
type Genre struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Icon       string `json:"icon"`
	EventCount int    `json:"event_count"`
}

// GenreRepository defines read access to genres.
type GenreRepository interface {
	// ListWithCounts returns all genres ordered by name, each with its number of published events.
	ListWithCounts(ctx context.Context) ([]*Genre, error)
}
