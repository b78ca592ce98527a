package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/delivery/http/middleware"
	"eventlistings/internal/domain"
)

// QueryBuilder turns raw query options into a validated SearchQuery.
type QueryBuilder interface {
	Build(raw map[string]string) (*domain.SearchQuery, error)
}

// EventListResponse is the success body for paginated event listings (200).
type EventListResponse struct {
	Success    bool                  `json:"success"`
	Events     []*domain.Event       `json:"events"`
	Pagination domain.PaginationMeta `json:"pagination"`
}

// EventResponse is the success body for a single event (200).
type EventResponse struct {
	Success bool          `json:"success"`
	Event   *domain.Event `json:"event"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventSearchService
	Queries QueryBuilder
}

func NewEventController(logger *slog.Logger, svc domain.EventSearchService, queries QueryBuilder) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Queries: queries,
	}
}

// Search godoc
// @Summary Search published events
// @Description Lists published events matching every supplied filter. With lat and lng, only events within radius km are returned, nearest first, each annotated with distance_km. An id parameter returns that single event instead.
// @Tags events
// @Produce json
// @Param id query int false "Return only this event"
// @Param search query string false "Substring of title, location or description"
// @Param genre query string false "Genre id or slug"
// @Param date_from query string false "Earliest date (YYYY-MM-DD)"
// @Param date_to query string false "Latest date (YYYY-MM-DD)"
// @Param price_min query number false "Minimum price"
// @Param price_max query number false "Maximum price"
// @Param lat query number false "Latitude of the search origin"
// @Param lng query number false "Longitude of the search origin"
// @Param radius query number false "Radius in km (default 50)"
// @Param sort query string false "date, price, name or created_at"
// @Param order query string false "ASC or DESC"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 12, max 100)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 400 {object} helpers.ValidationErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "only with id"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events [get]
func (c *EventController) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := c.buildQuery(w, r)
	if !ok {
		return
	}
	if q.EventID != nil {
		c.writeEvent(w, r, *q.EventID)
		return
	}
	res, err := c.Service.Search(r.Context(), middleware.AuthFromContext(r.Context()), q)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{Success: true, Events: res.Events, Pagination: res.Pagination})
}

// GetByID godoc
// @Summary Get a published event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ValidationErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events/{id} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		verr := domain.NewValidationError()
		verr.Add("id", "must be a positive integer")
		helpers.WriteValidationError(w, verr)
		return
	}
	c.writeEvent(w, r, id)
}

// ListAll godoc
// @Summary List all events including drafts
// @Description Same filters as the public search, without the published-only restriction. Defaults to newest first. Requires an admin or owner token.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of title, location or description"
// @Param genre query string false "Genre id or slug"
// @Param sort query string false "date, price, name or created_at (default created_at)"
// @Param order query string false "ASC or DESC (default DESC)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 12, max 100)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 400 {object} helpers.ValidationErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/admin/events [get]
func (c *EventController) ListAll(w http.ResponseWriter, r *http.Request) {
	raw := helpers.QueryOptions(r)
	// Single-event lookup is public only; here id would drop every other filter.
	delete(raw, "id")
	q, ok := c.buildQueryFrom(w, r, raw)
	if !ok {
		return
	}
	if raw["sort"] == "" {
		q.Sort = domain.SortCreatedAt
		if raw["order"] == "" {
			q.Order = domain.OrderDesc
		}
	}
	res, err := c.Service.ListAllEvents(r.Context(), middleware.AuthFromContext(r.Context()), q)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{Success: true, Events: res.Events, Pagination: res.Pagination})
}

func (c *EventController) buildQuery(w http.ResponseWriter, r *http.Request) (*domain.SearchQuery, bool) {
	return c.buildQueryFrom(w, r, helpers.QueryOptions(r))
}

func (c *EventController) buildQueryFrom(w http.ResponseWriter, r *http.Request, raw map[string]string) (*domain.SearchQuery, bool) {
	q, err := c.Queries.Build(raw)
	if err != nil {
		c.writeError(w, r, err)
		return nil, false
	}
	return q, true
}

func (c *EventController) writeEvent(w http.ResponseWriter, r *http.Request, id int64) {
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Success: true, Event: event})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(c.Logger, w, r, err)
}

// writeServiceError maps service errors to status codes. Anything unrecognized is
// logged and reported as a generic 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteValidationError(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgEventNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.MsgForbidden)
	case errors.Is(err, context.DeadlineExceeded):
		logger.WarnContext(r.Context(), "request timed out", requestAttrs(r, err)...)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.MsgServerError)
	default:
		logger.ErrorContext(r.Context(), "request failed", requestAttrs(r, err)...)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.MsgServerError)
	}
}

func requestAttrs(r *http.Request, err error) []any {
	return []any{
		"path", r.URL.Path,
		"method", r.Method,
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"err", err,
	}
}
