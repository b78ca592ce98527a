package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/lib/logger/sl"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Check godoc
// @Summary Liveness and database readiness
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Failure 503 {object} helpers.ErrorResponse
// @Router /healthz [get]
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.WarnContext(ctx, "database ping failed", sl.Err(err))
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
