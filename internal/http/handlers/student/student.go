// Package student contains the HTTP handlers for the Student resource.
//
// Handlers are built with the closure / factory pattern: a factory takes
// the dependencies (store, logger, counters) once at startup and returns
// the func(http.ResponseWriter, *http.Request) the router calls on every
// request.
//
//	router.HandleFunc("POST /api/student", student.New(store, log, counters))
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/storage"
	"github.com/aanand-mishra/college-api/internal/types"
	"github.com/aanand-mishra/college-api/internal/utils/response"
)

// maxBodyBytes caps the size of a create payload.
const maxBodyBytes = 1 << 20

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/student
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Jane Doe", "email": "jdoe@example.com",
//	  "course": "Nanophotonics", "gpa": 3.0, "_id": "<optional 24-hex id>" }
//
// Success response (201 Created): the document as the store holds it
// after the insert, with _id rendered as a hex string.
//
// Error responses:
//
//	422 Unprocessable Entity — empty body, malformed JSON, wrong field
//	                           types, or failed validation (gpa > 4 etc.)
//	500 Internal             — store failure (including a duplicate _id)
//
// The request counters move only once the payload has passed validation.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, log *slog.Logger, counters *metrics.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ── Step 1: Decode ────────────────────────────────────────────
		var payload types.StudentPayload
		if verr := decode(w, r, &payload); verr != nil {
			log.Debug("rejected student payload", slog.String("error", verr.Error()))
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(verr))
			return
		}

		// ── Step 2: Validate ──────────────────────────────────────────
		// Nothing reaches the store unless this passes.
		student, err := types.ValidateStudent(payload)
		if err != nil {
			var verr *types.ValidationError
			if errors.As(err, &verr) {
				log.Debug("rejected student payload", slog.String("error", verr.Error()))
				response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(verr))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		// Only validated requests count, matching what reaches the store.
		counters.Observe(metrics.StudentCreate)

		log.Debug("trying to add student",
			slog.String("name", student.Name),
			slog.String("email", student.Email))

		// ── Step 3: Insert ────────────────────────────────────────────
		id, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			log.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		// ── Step 4: Re-read ───────────────────────────────────────────
		// Answer with what the store actually holds, not with the input.
		created, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			log.Error("error reading created student",
				slog.String("id", id.Hex()),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		log.Debug("added student successfully", slog.String("id", id.Hex()))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// decode reads the request body into dst, turning every decoding problem
// into a field-level validation error.
func decode(w http.ResponseWriter, r *http.Request, dst *types.StudentPayload) *types.ValidationError {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.Is(err, io.EOF):
		return types.NewFieldError("body", "required", "request body is empty")
	case errors.As(err, &typeErr):
		// An empty Field means the body itself has the wrong shape ([], "x", 1).
		if typeErr.Field == "" {
			return types.NewFieldError("body", "type", "request body must be a JSON object")
		}
		return types.NewFieldError(typeErr.Field, "type",
			fmt.Sprintf("field %s has the wrong type: got %s", typeErr.Field, typeErr.Value))
	case errors.As(err, &maxErr):
		return types.NewFieldError("body", "size",
			fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit))
	case errors.As(err, &syntaxErr):
		return types.NewFieldError("body", "json",
			fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	default:
		return types.NewFieldError("body", "json", err.Error())
	}
}
