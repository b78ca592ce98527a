package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventlistings/config"
	_ "eventlistings/docs"
	"eventlistings/internal/adapters/auth"
	delivery "eventlistings/internal/delivery/http"
	"eventlistings/internal/delivery/http/controllers"
	"eventlistings/internal/domain"
	"eventlistings/internal/lib/logger/sl"
	"eventlistings/internal/metrics"
	"eventlistings/internal/repository/postgres"
	rediscache "eventlistings/internal/repository/redis"
	"eventlistings/internal/services"

	_ "github.com/lib/pq"
)

// @title Event Listings API
// @version 1.0
// @description Geo-filtered, paginated search over published events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", sl.Err(err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		logger.Error("failed to reach database", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("connected to database")

	m := metrics.New()

	eventRepo := postgres.NewEventRepository(db)
	var genreRepo domain.GenreRepository = postgres.NewGenreRepository(db)
	if cfg.RedisAddr != "" {
		client := rediscache.NewClient(cfg.RedisAddr)
		defer client.Close()
		genreRepo = rediscache.NewGenreCache(client, genreRepo, cfg.GenreCacheTTL, logger)
		logger.Info("genre cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.GenreCacheTTL))
	}

	searchService := services.NewEventSearchService(eventRepo, genreRepo, m, cfg.RequestTimeout)
	filters := services.NewFilterBuilder(cfg.DefaultPageLimit, cfg.DefaultRadiusKm)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty; admin routes will reject every token")
	}
	tokens := auth.NewJWT(cfg.JWTSecret, 24*time.Hour)

	mux := delivery.NewRouter(delivery.Controllers{
		Events: controllers.NewEventController(logger, searchService, filters),
		Genres: controllers.NewGenreController(logger, searchService),
		Health: controllers.NewHealthController(logger, db),
	}, tokens, m.Handler(), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           delivery.Wrap(mux, logger, cfg.CORSAllowedOrigins, m),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", sl.Err(err))
	}
	logger.Info("server exited")
}
