package status

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestHealth(t *testing.T) {
	counters := metrics.New()
	rec := httptest.NewRecorder()

	Health(discard(), counters)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"health":"ok"}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(counters.Total()))
	assert.Equal(t, 1.0, testutil.ToFloat64(counters.For(metrics.Health)))
	assert.Equal(t, 0.0, testutil.ToFloat64(counters.For(metrics.Greeting)))
}

func TestHello(t *testing.T) {
	counters := metrics.New()
	h := Hello(discard(), counters)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"msg":"Hello World"}`, rec.Body.String())
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(counters.Total()))
	assert.Equal(t, 3.0, testutil.ToFloat64(counters.For(metrics.Greeting)))
}
