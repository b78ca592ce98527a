package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventlistings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreController_List(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeSearchService
		wantStatus int
		wantBody   string
	}{
		{
			name: "genres with counts",
			svc: &fakeSearchService{genres: []*domain.Genre{
				{ID: 1, Name: "Jazz", Slug: "jazz", Icon: "sax", EventCount: 0},
				{ID: 2, Name: "Rock", Slug: "rock", Icon: "guitar", EventCount: 5},
			}},
			wantStatus: http.StatusOK,
			wantBody: `{"success":true,"genres":[
				{"id":1,"name":"Jazz","slug":"jazz","icon":"sax","event_count":0},
				{"id":2,"name":"Rock","slug":"rock","icon":"guitar","event_count":5}]}`,
		},
		{
			name:       "no genres",
			svc:        &fakeSearchService{},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"genres":[]}`,
		},
		{
			name:       "failure",
			svc:        &fakeSearchService{genresErr: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewGenreController(testLogger, tt.svc).List(rr, httptest.NewRequest(http.MethodGet, "/api/genres", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
