package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	auth domain.AuthContext
	err  error
}

func (f *fakeTokenVerifier) Verify(_ string) (domain.AuthContext, error) {
	if f.err != nil {
		return domain.AuthContext{}, f.err
	}
	return f.auth, nil
}

func TestAuthenticate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	admin := domain.AuthContext{UserID: 7, Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		authHeader string
		verifier   domain.TokenVerifier
		wantStatus int
		nextCalled bool
		wantAuth   domain.AuthContext
	}{
		{
			name:       "valid token attaches caller",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{auth: admin},
			wantStatus: http.StatusOK,
			nextCalled: true,
			wantAuth:   admin,
		},
		{
			name:       "no header continues as anonymous",
			verifier:   &fakeTokenVerifier{auth: admin},
			wantStatus: http.StatusOK,
			nextCalled: true,
			wantAuth:   domain.Anonymous(),
		},
		{
			name:       "invalid authorization format no Bearer prefix",
			authHeader: "Basic abc",
			verifier:   &fakeTokenVerifier{auth: admin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token after Bearer",
			authHeader: "Bearer ",
			verifier:   &fakeTokenVerifier{auth: admin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier returns error",
			authHeader: "Bearer bad-token",
			verifier:   &fakeTokenVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured domain.AuthContext
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured = AuthFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			handler := Authenticate(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/api/admin/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantAuth, captured)
				return
			}
			var body helpers.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestAuthFromContext_DefaultsToAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, AuthFromContext(req.Context()).IsAnonymous())
}
