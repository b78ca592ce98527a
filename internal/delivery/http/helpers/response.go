package helpers

import (
	"encoding/json"
	"net/http"

	"eventlistings/internal/domain"
)

// Client-facing error messages. Server-side details are logged, never returned.
const (
	MsgServerError      = "Server error"
	MsgMethodNotAllowed = "Method not allowed"
	MsgEventNotFound    = "Event not found"
	MsgUnauthorized     = "Unauthorized"
	MsgForbidden        = "Forbidden"
)

// ErrorResponse is the body of every non-validation error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists rejected query parameters with a message for each.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes {"error": message} with statusCode.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteValidationError writes a 400 with the field messages of verr.
func WriteValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Fields})
}

// MethodNotAllowed responds 405 for any verb a route does not serve.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteJSONError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
