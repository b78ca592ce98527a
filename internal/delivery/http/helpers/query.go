package helpers

import (
	"net/http"
)

// QueryOptions flattens the request query string to its first value per key.
// Repeated keys keep the first occurrence; empty values are kept so callers can
// tell "present but empty" from absent.
func QueryOptions(r *http.Request) map[string]string {
	values := r.URL.Query()
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
