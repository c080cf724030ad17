package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIncrementsTotalAndEndpoint(t *testing.T) {
	c := New()

	c.Observe(Health)
	c.Observe(Health)
	c.Observe(Joke)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.Total()))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.For(Health)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.For(Joke)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.For(Greeting)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.For(StudentCreate)))
}

func TestObserveIsSafeForConcurrentUse(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Observe(StudentCreate)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5000.0, testutil.ToFloat64(c.Total()))
	assert.Equal(t, 5000.0, testutil.ToFloat64(c.For(StudentCreate)))
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Observe(Greeting)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Total()))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Total()))
}

func TestScrapeEndpoint(t *testing.T) {
	c := New()
	c.Observe(Greeting)

	srv := httptest.NewServer(NewServer(":0", c).Handler)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	for _, want := range []string{
		"server_requests_total 1",
		"main_requests_total 1",
		"healthcheck_requests_total 0",
		"students_create_total 0",
		"joke_requests_total 0",
	} {
		assert.Contains(t, string(body), want)
	}
}
