// Package status holds the two fixed-response endpoints: the health check
// and the greeting. Neither touches the store, so both answer 200 no
// matter what state the database is in.
package status

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/utils/response"
)

// Health handles GET /health.
//
//	200 {"health": "ok"}
func Health(log *slog.Logger, counters *metrics.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("healthcheck endpoint called")
		counters.Observe(metrics.Health)

		response.WriteJSON(w, http.StatusOK, map[string]string{"health": "ok"})
	}
}

// Hello handles GET /hello.
//
//	200 {"msg": "Hello World"}
func Hello(log *slog.Logger, counters *metrics.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("main endpoint called")
		counters.Observe(metrics.Greeting)

		response.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Hello World"})
	}
}
