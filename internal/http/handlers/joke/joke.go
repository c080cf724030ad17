// Package joke serves GET /joke by proxying one call to the joke provider.
package joke

import (
	"log/slog"
	"net/http"

	jokeclient "github.com/aanand-mishra/college-api/internal/joke"
	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/utils/response"
)

// FailureMessage is the body's error text when no joke could be fetched.
const FailureMessage = "Failed to get a joke"

// Tell handles GET /joke.
//
//	200 {"setup": "...", "punchline": "..."}
//	200 {"error": "Failed to get a joke"}   when the provider fails
//
// Provider failures keep the 200 status; clients check for the error key.
func Tell(fetcher jokeclient.Fetcher, log *slog.Logger, counters *metrics.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters.Observe(metrics.Joke)

		j, err := fetcher.Fetch(r.Context())
		if err != nil {
			log.Warn("joke provider failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusOK, map[string]string{"error": FailureMessage})
			return
		}

		response.WriteJSON(w, http.StatusOK, j)
	}
}
