// Package router builds the API route table.
//
// The table is built once at startup from explicit dependencies and the
// resulting http.Handler is handed to the listener; nothing about the
// routes lives in package-level state.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/college-api/internal/http/handlers/joke"
	"github.com/aanand-mishra/college-api/internal/http/handlers/status"
	"github.com/aanand-mishra/college-api/internal/http/handlers/student"
	"github.com/aanand-mishra/college-api/internal/http/middleware"
	jokeclient "github.com/aanand-mishra/college-api/internal/joke"
	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/storage"
)

// Deps are the collaborators the handlers share.
type Deps struct {
	Store    storage.Storage
	Jokes    jokeclient.Fetcher
	Counters *metrics.Counters
	Log      *slog.Logger
}

// New returns the API handler.
//
// Route table:
//
//	GET  /health       → health check
//	GET  /hello        → greeting
//	POST /api/student  → create a student
//	GET  /joke         → random joke
//
// Unknown paths get 404 and known paths with the wrong method get 405,
// both from http.ServeMux.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", status.Health(d.Log, d.Counters))
	mux.HandleFunc("GET /hello", status.Hello(d.Log, d.Counters))
	mux.HandleFunc("POST /api/student", student.New(d.Store, d.Log, d.Counters))
	mux.HandleFunc("GET /joke", joke.Tell(d.Jokes, d.Log, d.Counters))

	var h http.Handler = mux
	h = middleware.Recover(d.Log)(h)
	h = middleware.AccessLog(d.Log)(h)
	h = middleware.RequestID(h)

	return h
}
