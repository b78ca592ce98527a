package http

import (
	"log/slog"
	"net/http"

	"eventlistings/internal/delivery/http/controllers"
	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/delivery/http/middleware"
	"eventlistings/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events *controllers.EventController
	Genres *controllers.GenreController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, metrics http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.Authenticate(verifier, logger)

	// API Routes
	mux.HandleFunc("GET /api/events", auth(c.Events.Search))
	mux.HandleFunc("GET /api/events/{id}", auth(c.Events.GetByID))
	mux.HandleFunc("GET /api/genres", auth(c.Genres.List))

	// Admin
	mux.HandleFunc("GET /api/admin/events", auth(c.Events.ListAll))

	// Method-less patterns catch every other verb on the same paths
	for _, path := range []string{"/api/events", "/api/events/{id}", "/api/genres", "/api/admin/events"} {
		mux.HandleFunc(path, helpers.MethodNotAllowed)
	}

	// Ops
	mux.HandleFunc("GET /healthz", c.Health.Check)
	mux.Handle("GET /metrics", metrics)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Observer receives per-request metrics.
type Observer = middleware.RequestObserver

// Wrap applies the cross-cutting middleware around the router, outermost first:
// request id, logging, CORS, then metrics directly around mux.
func Wrap(mux *http.ServeMux, logger *slog.Logger, allowedOrigins []string, observer Observer) http.Handler {
	var h http.Handler = mux
	if observer != nil {
		h = middleware.Metrics(observer, h)
	}
	h = middleware.CORS(allowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.RequestID(h)
}
