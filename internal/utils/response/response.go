// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler sends JSON back to the client. Rather than repeating the
// same three lines (set header, set status, encode JSON) in every handler,
// they are centralised here, along with the error envelope.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/college-api/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape. Error responses look like:
//
//	{ "status": "error", "error": "field gpa is required" }
//
// Validation failures also enumerate the offending fields:
//
//	{ "status": "error", "error": "...", "fields": [ {"field": "gpa", ...} ] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string             `json:"status"`
	Error  string             `json:"error"`
	Fields []types.FieldError `json:"fields,omitempty"`
}

// StatusError marks every error envelope.
const StatusError = "error"

// WriteJSON writes data JSON-encoded with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body writes. Once WriteHeader
// is called, headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
// Use it for unexpected errors (store failures and the like).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns a *types.ValidationError into a Response that
// lists every failing field.
func ValidationError(err *types.ValidationError) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
		Fields: err.Fields,
	}
}
