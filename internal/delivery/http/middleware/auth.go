package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/domain"
	"eventlistings/internal/lib/logger/sl"
)

type contextKey string

const (
	authKey      contextKey = "auth"
	requestIDKey contextKey = "requestID"
)

// SetAuth returns a context carrying the caller's AuthContext.
func SetAuth(ctx context.Context, auth domain.AuthContext) context.Context {
	return context.WithValue(ctx, authKey, auth)
}

// AuthFromContext returns the caller attached by Authenticate, or an anonymous caller.
func AuthFromContext(ctx context.Context) domain.AuthContext {
	auth, ok := ctx.Value(authKey).(domain.AuthContext)
	if !ok {
		return domain.Anonymous()
	}
	return auth
}

// Authenticate resolves an optional Bearer token into an AuthContext stored on the request context.
// Requests without an Authorization header continue as anonymous. A header that is present
// but malformed, or a token the verifier rejects, gets a 401 and next is not called.
func Authenticate(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next(w, r.WithContext(SetAuth(r.Context(), domain.Anonymous())))
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, "missing token")
				return
			}
			auth, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected",
					slog.String("request_id", RequestIDFromContext(r.Context())), sl.Err(err))
				h.WriteJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetAuth(r.Context(), auth)))
		}
	}
}
