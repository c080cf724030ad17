package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/college-api/internal/config"
	"github.com/aanand-mishra/college-api/internal/http/middleware"
	jokeclient "github.com/aanand-mishra/college-api/internal/joke"
	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedJoke struct{}

func (fixedJoke) Fetch(context.Context) (jokeclient.Joke, error) {
	return jokeclient.Joke{Setup: "setup", Punchline: "punchline"}, nil
}

func newAPI(t *testing.T) (*httptest.Server, *metrics.Counters) {
	t.Helper()

	store, err := sqlite.New(config.ForTest().SQLite.Path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })

	counters := metrics.New()
	srv := httptest.NewServer(New(Deps{
		Store:    store,
		Jokes:    fixedJoke{},
		Counters: counters,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(srv.Close)

	return srv, counters
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(b)
}

func TestRoutes(t *testing.T) {
	srv, counters := newAPI(t)

	res, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"health":"ok"}`, body)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))

	res, body = do(t, http.MethodGet, srv.URL+"/hello", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"msg":"Hello World"}`, body)

	res, body = do(t, http.MethodGet, srv.URL+"/joke", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"setup":"setup","punchline":"punchline"}`, body)

	res, body = do(t, http.MethodPost, srv.URL+"/api/student",
		`{"name":"Jane Doe","email":"jdoe@example.com","course":"Nanophotonics","gpa":3.0}`)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Len(t, created["_id"], 24)

	assert.Equal(t, 4.0, testutil.ToFloat64(counters.Total()))
	for _, e := range []metrics.Endpoint{metrics.Health, metrics.Greeting, metrics.Joke, metrics.StudentCreate} {
		assert.Equal(t, 1.0, testutil.ToFloat64(counters.For(e)), e.String())
	}
}

func TestUnknownRouteAndWrongMethod(t *testing.T) {
	srv, counters := newAPI(t)

	res, _ := do(t, http.MethodGet, srv.URL+"/nope", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = do(t, http.MethodGet, srv.URL+"/api/student", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	assert.Equal(t, 0.0, testutil.ToFloat64(counters.Total()))
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newAPI(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, "abc-123", res.Header.Get(middleware.RequestIDHeader))
}
