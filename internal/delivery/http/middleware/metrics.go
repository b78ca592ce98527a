package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records completed requests.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics observes every request by its matched ServeMux pattern. It must wrap the
// mux directly so the pattern set during routing is visible after next returns.
func Metrics(observer RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
