package controllers

import (
	"log/slog"
	"net/http"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/domain"
)

// GenreListResponse is the success body for GET /api/genres (200).
type GenreListResponse struct {
	Success bool            `json:"success"`
	Genres  []*domain.Genre `json:"genres"`
}

type GenreController struct {
	Logger  *slog.Logger
	Service domain.EventSearchService
}

func NewGenreController(logger *slog.Logger, svc domain.EventSearchService) *GenreController {
	return &GenreController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List genres
// @Description All genres ordered by name, each with the number of published events tagged with it.
// @Tags genres
// @Produce json
// @Success 200 {object} controllers.GenreListResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/genres [get]
func (c *GenreController) List(w http.ResponseWriter, r *http.Request) {
	genres, err := c.Service.ListGenres(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if genres == nil {
		genres = []*domain.Genre{}
	}
	helpers.WriteJSON(w, http.StatusOK, GenreListResponse{Success: true, Genres: genres})
}
