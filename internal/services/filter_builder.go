package services

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"eventlistings/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Pagination and proximity defaults for public search.
const (
	DefaultPage     = 1
	DefaultLimit    = 12
	MaxLimit        = 100
	DefaultRadiusKm = 50.0
	// MaxPage keeps page*MaxLimit within int range.
	MaxPage = math.MaxInt / MaxLimit
)

const dateLayout = "2006-01-02"

// geoInput is validated with struct tags; the json names become the error field keys.
type geoInput struct {
	Lat    *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng    *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Radius *float64 `json:"radius" validate:"omitempty,gte=0"`
}

var geoMessages = map[string]string{
	"lat":    "must be between -90 and 90",
	"lng":    "must be between -180 and 180",
	"radius": "must be a non-negative number",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FilterBuilder turns raw query options into a validated SearchQuery.
type FilterBuilder struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultRadiusKm float64
}

// NewFilterBuilder returns a FilterBuilder. Non-positive arguments select the package defaults.
func NewFilterBuilder(defaultLimit int, defaultRadiusKm float64) *FilterBuilder {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}
	if defaultLimit > MaxLimit {
		defaultLimit = MaxLimit
	}
	return &FilterBuilder{
		DefaultLimit:    defaultLimit,
		MaxLimit:        MaxLimit,
		DefaultRadiusKm: defaultRadiusKm,
	}
}

// Build validates raw and returns the normalized query. Unrecognized keys are ignored,
// including status: public queries are always restricted to published events.
// All problems are reported together as a *domain.ValidationError.
func (b *FilterBuilder) Build(raw map[string]string) (*domain.SearchQuery, error) {
	verr := domain.NewValidationError()
	q := &domain.SearchQuery{
		Sort:     domain.ParseSortField(raw["sort"]),
		Order:    domain.ParseSortOrder(raw["order"]),
		Page:     b.parsePage(raw["page"]),
		Limit:    b.parseLimit(raw["limit"]),
		RadiusKm: b.DefaultRadiusKm,
	}

	if s, ok := nonEmpty(raw, "id"); ok {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 1 {
			verr.Add("id", "must be a positive integer")
			return nil, verr
		}
		q.EventID = &id
		return q, nil
	}

	if s, ok := nonEmpty(raw, "search"); ok {
		q.Filter.Search = s
	}
	if s, ok := nonEmpty(raw, "genre"); ok {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			q.Filter.GenreID = &id
		} else {
			q.Filter.GenreSlug = strings.ToLower(s)
		}
	}
	q.Filter.DateFrom = parseDate(raw, "date_from", verr)
	q.Filter.DateTo = parseDate(raw, "date_to", verr)
	q.Filter.PriceMin = parsePrice(raw, "price_min", verr)
	q.Filter.PriceMax = parsePrice(raw, "price_max", verr)

	b.parseGeo(raw, q, verr)

	if verr.HasErrors() {
		return nil, verr
	}
	return q, nil
}

func (b *FilterBuilder) parsePage(s string) int {
	// Out of range input comes back saturated at the int bounds along with ErrRange.
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || page < 1 {
		return DefaultPage
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

func (b *FilterBuilder) parseLimit(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return b.DefaultLimit
	}
	limit, err := strconv.Atoi(s)
	if err != nil {
		return b.DefaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > b.MaxLimit {
		return b.MaxLimit
	}
	return limit
}

func (b *FilterBuilder) parseGeo(raw map[string]string, q *domain.SearchQuery, verr *domain.ValidationError) {
	var in geoInput
	in.Lat = parseFloat(raw, "lat", verr)
	in.Lng = parseFloat(raw, "lng", verr)
	in.Radius = parseFloat(raw, "radius", verr)

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Add("lat", err.Error())
			return
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), geoMessages[fe.Field()])
		}
		return
	}

	_, hasLat := nonEmpty(raw, "lat")
	_, hasLng := nonEmpty(raw, "lng")
	switch {
	case hasLat && !hasLng:
		verr.Add("lng", "is required when lat is set")
	case hasLng && !hasLat:
		verr.Add("lat", "is required when lng is set")
	}
	if in.Lat == nil || in.Lng == nil {
		return
	}
	q.Near = &domain.GeoPoint{Lat: *in.Lat, Lng: *in.Lng}
	if in.Radius != nil {
		q.RadiusKm = *in.Radius
	}
}

func nonEmpty(raw map[string]string, key string) (string, bool) {
	s := strings.TrimSpace(raw[key])
	return s, s != ""
}

func parseFloat(raw map[string]string, key string, verr *domain.ValidationError) *float64 {
	s, ok := nonEmpty(raw, key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		verr.Add(key, "must be a number")
		return nil
	}
	return &v
}

func parseDate(raw map[string]string, key string, verr *domain.ValidationError) *time.Time {
	s, ok := nonEmpty(raw, key)
	if !ok {
		return nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		verr.Add(key, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &d
}

func parsePrice(raw map[string]string, key string, verr *domain.ValidationError) *decimal.Decimal {
	s, ok := nonEmpty(raw, key)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		verr.Add(key, "must be a number")
		return nil
	}
	if d.IsNegative() {
		verr.Add(key, "must not be negative")
		return nil
	}
	return &d
}
