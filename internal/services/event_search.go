package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlistings/internal/domain"
	"eventlistings/internal/geo"
)

// SearchObserver receives one observation per completed search.
type SearchObserver interface {
	ObserveSearch(geoFiltered bool, results int)
}

type noopObserver struct{}

func (noopObserver) ObserveSearch(bool, int) {}

type eventSearchService struct {
	eventRepo      domain.EventRepository
	genreRepo      domain.GenreRepository
	observer       SearchObserver
	contextTimeout time.Duration
}

// NewEventSearchService creates an EventSearchService over the given repositories.
// A nil observer disables search observations; a zero timeout leaves ctx untouched.
func NewEventSearchService(eventRepo domain.EventRepository,
	genreRepo domain.GenreRepository,
	observer SearchObserver,
	timeout time.Duration,
) domain.EventSearchService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &eventSearchService{
		eventRepo:      eventRepo,
		genreRepo:      genreRepo,
		observer:       observer,
		contextTimeout: timeout,
	}
}

func (s *eventSearchService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

// Search runs a public search. Drafts are never included, whoever the caller is.
// EventID is ignored; single-event lookups go through GetEvent.
func (s *eventSearchService) Search(ctx context.Context, _ domain.AuthContext, q *domain.SearchQuery) (*domain.SearchResult, error) {
	filter := q.Filter
	filter.IncludeDrafts = false
	return s.search(ctx, q, filter)
}

// ListAllEvents lists events including drafts. Only admins and owners may call it.
func (s *eventSearchService) ListAllEvents(ctx context.Context, auth domain.AuthContext, q *domain.SearchQuery) (*domain.SearchResult, error) {
	if auth.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}
	if !auth.CanManageEvents() {
		return nil, domain.ErrForbidden
	}
	filter := q.Filter
	filter.IncludeDrafts = true
	return s.search(ctx, q, filter)
}

func (s *eventSearchService) search(ctx context.Context, q *domain.SearchQuery, filter domain.EventFilter) (*domain.SearchResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page > MaxPage {
		page = MaxPage
	}
	offset := domain.PaginationParams{Page: page, PageSize: limit}.Offset()

	if q.Near != nil {
		return s.searchNear(ctx, q, filter, page, limit, offset)
	}

	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	events, err := s.eventRepo.FindPage(ctx, filter, q.Sort, q.Order, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	s.observer.ObserveSearch(false, len(events))
	return &domain.SearchResult{
		Events:     events,
		Pagination: domain.NewPaginationMeta(page, limit, total),
	}, nil
}

// searchNear filters the full matching set by distance before paginating, so total and
// pages describe every event within the radius, not just one fetched page.
func (s *eventSearchService) searchNear(ctx context.Context, q *domain.SearchQuery, filter domain.EventFilter, page, limit, offset int) (*domain.SearchResult, error) {
	filter.RequireCoordinates = true
	candidates, err := s.eventRepo.FindPage(ctx, filter, q.Sort, q.Order, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find events near point: %w", err)
	}
	near := geo.FilterByDistance(candidates, *q.Near, q.RadiusKm)

	events := make([]*domain.Event, 0, limit)
	if offset >= 0 && offset < len(near) {
		end := offset + limit
		if end > len(near) {
			end = len(near)
		}
		events = append(events, near[offset:end]...)
	}
	s.observer.ObserveSearch(true, len(events))
	return &domain.SearchResult{
		Events:     events,
		Pagination: domain.NewPaginationMeta(page, limit, len(near)),
	}, nil
}

func (s *eventSearchService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventSearchService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	genres, err := s.genreRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}
