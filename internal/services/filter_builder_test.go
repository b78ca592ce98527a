package services

import (
	"errors"
	"testing"
	"time"

	"eventlistings/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilterBuilder_Defaults(t *testing.T) {
	b := NewFilterBuilder(0, 0)
	assert.Equal(t, DefaultLimit, b.DefaultLimit)
	assert.Equal(t, MaxLimit, b.MaxLimit)
	assert.Equal(t, DefaultRadiusKm, b.DefaultRadiusKm)

	b = NewFilterBuilder(500, 25)
	assert.Equal(t, MaxLimit, b.DefaultLimit)
	assert.Equal(t, 25.0, b.DefaultRadiusKm)
}

func TestFilterBuilder_Build_Pagination(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	tests := []struct {
		name      string
		raw       map[string]string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", raw: map[string]string{}, wantPage: 1, wantLimit: 12},
		{name: "explicit", raw: map[string]string{"page": "3", "limit": "20"}, wantPage: 3, wantLimit: 20},
		{name: "zero page", raw: map[string]string{"page": "0"}, wantPage: 1, wantLimit: 12},
		{name: "negative page", raw: map[string]string{"page": "-4"}, wantPage: 1, wantLimit: 12},
		{name: "non-numeric page", raw: map[string]string{"page": "two"}, wantPage: 1, wantLimit: 12},
		{name: "limit above max is clamped", raw: map[string]string{"limit": "1000"}, wantPage: 1, wantLimit: 100},
		{name: "limit below one is clamped", raw: map[string]string{"limit": "0"}, wantPage: 1, wantLimit: 1},
		{name: "non-numeric limit", raw: map[string]string{"limit": "lots"}, wantPage: 1, wantLimit: 12},
		{name: "huge page is capped", raw: map[string]string{"page": "9223372036854775807", "limit": "100"}, wantPage: MaxPage, wantLimit: 100},
		{name: "page beyond int range is capped", raw: map[string]string{"page": "99999999999999999999999"}, wantPage: MaxPage, wantLimit: 12},
		{name: "page below int range", raw: map[string]string{"page": "-99999999999999999999999"}, wantPage: 1, wantLimit: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := b.Build(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, (tt.wantPage-1)*tt.wantLimit, q.Pagination().Offset())
			assert.GreaterOrEqual(t, q.Offset(), 0)
		})
	}
}

func TestFilterBuilder_Build_Sort(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	tests := []struct {
		name      string
		raw       map[string]string
		wantSort  domain.SortField
		wantOrder domain.SortOrder
	}{
		{name: "default", raw: map[string]string{}, wantSort: domain.SortDate, wantOrder: domain.OrderAsc},
		{name: "price desc", raw: map[string]string{"sort": "price", "order": "desc"}, wantSort: domain.SortPrice, wantOrder: domain.OrderDesc},
		{name: "name alias", raw: map[string]string{"sort": "name", "order": "DESC"}, wantSort: domain.SortTitle, wantOrder: domain.OrderDesc},
		{name: "unknown sort falls back", raw: map[string]string{"sort": "e.id; DROP TABLE events"}, wantSort: domain.SortDate, wantOrder: domain.OrderAsc},
		{name: "unknown order falls back", raw: map[string]string{"order": "sideways"}, wantSort: domain.SortDate, wantOrder: domain.OrderAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := b.Build(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSort, q.Sort)
			assert.Equal(t, tt.wantOrder, q.Order)
		})
	}
}

func TestFilterBuilder_Build_Filters(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	q, err := b.Build(map[string]string{
		"search":    "  jazz night ",
		"genre":     "Rock",
		"date_from": "2025-06-01",
		"date_to":   "2025-06-30",
		"price_min": "5",
		"price_max": "20.50",
		"status":    "draft",
	})
	require.NoError(t, err)

	f := q.Filter
	assert.Equal(t, "jazz night", f.Search)
	assert.Equal(t, "rock", f.GenreSlug)
	assert.Nil(t, f.GenreID)
	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *f.DateTo)
	require.NotNil(t, f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.True(t, decimal.NewFromInt(5).Equal(*f.PriceMin))
	assert.True(t, decimal.RequireFromString("20.5").Equal(*f.PriceMax))
	assert.False(t, f.IncludeDrafts, "status must not widen a public query")
	assert.Nil(t, q.Near)
	assert.Nil(t, q.EventID)
}

func TestFilterBuilder_Build_NumericGenre(t *testing.T) {
	q, err := NewFilterBuilder(12, 50).Build(map[string]string{"genre": "7"})
	require.NoError(t, err)
	require.NotNil(t, q.Filter.GenreID)
	assert.Equal(t, int64(7), *q.Filter.GenreID)
	assert.Empty(t, q.Filter.GenreSlug)
}

func TestFilterBuilder_Build_EventID(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	q, err := b.Build(map[string]string{"id": "42", "genre": "rock", "lat": "999"})
	require.NoError(t, err)
	require.NotNil(t, q.EventID)
	assert.Equal(t, int64(42), *q.EventID)
	assert.Empty(t, q.Filter.GenreSlug, "id short-circuits other options")

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := b.Build(map[string]string{"id": bad})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "id=%q", bad)
		assert.Contains(t, verr.Fields, "id")
	}
}

func TestFilterBuilder_Build_Geo(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	t.Run("point with default radius", func(t *testing.T) {
		q, err := b.Build(map[string]string{"lat": "51.5074", "lng": "-0.1278"})
		require.NoError(t, err)
		require.NotNil(t, q.Near)
		assert.Equal(t, domain.GeoPoint{Lat: 51.5074, Lng: -0.1278}, *q.Near)
		assert.Equal(t, 50.0, q.RadiusKm)
	})

	t.Run("explicit radius", func(t *testing.T) {
		q, err := b.Build(map[string]string{"lat": "0", "lng": "0", "radius": "2.5"})
		require.NoError(t, err)
		require.NotNil(t, q.Near)
		assert.Equal(t, 2.5, q.RadiusKm)
	})

	t.Run("radius alone is ignored", func(t *testing.T) {
		q, err := b.Build(map[string]string{"radius": "10"})
		require.NoError(t, err)
		assert.Nil(t, q.Near)
	})
}

func TestFilterBuilder_Build_ValidationErrors(t *testing.T) {
	b := NewFilterBuilder(12, 50)

	tests := []struct {
		name       string
		raw        map[string]string
		wantFields map[string]string
	}{
		{
			name:       "latitude out of range",
			raw:        map[string]string{"lat": "91", "lng": "0"},
			wantFields: map[string]string{"lat": "must be between -90 and 90"},
		},
		{
			name:       "longitude out of range",
			raw:        map[string]string{"lat": "0", "lng": "-180.5"},
			wantFields: map[string]string{"lng": "must be between -180 and 180"},
		},
		{
			name:       "negative radius",
			raw:        map[string]string{"lat": "0", "lng": "0", "radius": "-1"},
			wantFields: map[string]string{"radius": "must be a non-negative number"},
		},
		{
			name:       "lat without lng",
			raw:        map[string]string{"lat": "10"},
			wantFields: map[string]string{"lng": "is required when lat is set"},
		},
		{
			name:       "lng without lat",
			raw:        map[string]string{"lng": "10"},
			wantFields: map[string]string{"lat": "is required when lng is set"},
		},
		{
			name:       "non-numeric coordinate",
			raw:        map[string]string{"lat": "north", "lng": "NaN"},
			wantFields: map[string]string{"lat": "must be a number", "lng": "must be a number"},
		},
		{
			name:       "bad dates",
			raw:        map[string]string{"date_from": "01/06/2025", "date_to": "2025-13-01"},
			wantFields: map[string]string{"date_from": "must be a date in YYYY-MM-DD format", "date_to": "must be a date in YYYY-MM-DD format"},
		},
		{
			name:       "bad prices",
			raw:        map[string]string{"price_min": "cheap", "price_max": "-3"},
			wantFields: map[string]string{"price_min": "must be a number", "price_max": "must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := b.Build(tt.raw)
			require.Error(t, err)
			assert.Nil(t, q)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}
