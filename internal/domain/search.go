package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortField is the closed set of columns a listing may be ordered by.
type SortField int

const (
	SortDate SortField = iota
	SortPrice
	SortTitle
	SortCreatedAt
)

// ParseSortField maps a caller-supplied sort name to a SortField.
// Unknown values fall back to SortDate.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return SortPrice
	case "name", "title":
		return SortTitle
	case "created_at":
		return SortCreatedAt
	default:
		return SortDate
	}
}

func (f SortField) String() string {
	switch f {
	case SortPrice:
		return "price"
	case SortTitle:
		return "title"
	case SortCreatedAt:
		return "created_at"
	default:
		return "date"
	}
}

// SortOrder is the listing direction.
type SortOrder int

const (
	OrderAsc SortOrder = iota
	OrderDesc
)

// ParseSortOrder maps "ASC"/"DESC" (any case) to a SortOrder. Anything else is OrderAsc.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return OrderDesc
	}
	return OrderAsc
}

func (o SortOrder) String() string {
	if o == OrderDesc {
		return "DESC"
	}
	return "ASC"
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// EventFilter is the normalized predicate over the events relation.
// Zero-valued fields impose no constraint.
type EventFilter struct {
	Search    string
	GenreID   *int64
	GenreSlug string
	DateFrom  *time.Time
	DateTo    *time.Time
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	// IncludeDrafts lifts the published-only constraint. Never set from request input.
	IncludeDrafts bool
	// RequireCoordinates restricts matches to events with both lat and lng set.
	RequireCoordinates bool
}

// SearchQuery is a validated search request.
type SearchQuery struct {
	// EventID short-circuits every other option when set.
	EventID  *int64
	Filter   EventFilter
	Sort     SortField
	Order    SortOrder
	Page     int
	Limit    int
	Near     *GeoPoint
	RadiusKm float64
}

// Pagination returns the page/limit pair as PaginationParams.
func (q *SearchQuery) Pagination() PaginationParams {
	return PaginationParams{Page: q.Page, PageSize: q.Limit}
}

// Offset returns the row offset of the requested page.
func (q *SearchQuery) Offset() int {
	return q.Pagination().Offset()
}

// SearchResult is one page of events plus pagination metadata.
type SearchResult struct {
	Events     []*Event       `json:"events"`
	Pagination PaginationMeta `json:"pagination"`
}
