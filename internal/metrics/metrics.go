// Package metrics owns the request counters and the scrape endpoint.
//
// Counters live on a private *prometheus.Registry held by a Counters
// value that is passed to handlers, rather than on the process-wide
// default registry. Prometheus counters are atomic, so concurrent
// handlers never lose an increment.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Endpoint identifies the logical endpoint a request was routed to.
type Endpoint int

const (
	Health Endpoint = iota
	Greeting
	StudentCreate
	Joke
)

func (e Endpoint) String() string {
	switch e {
	case Health:
		return "health"
	case Greeting:
		return "greeting"
	case StudentCreate:
		return "student_create"
	case Joke:
		return "joke"
	default:
		return "unknown"
	}
}

// Counters holds one total counter and one counter per endpoint.
type Counters struct {
	registry *prometheus.Registry

	total      prometheus.Counter
	byEndpoint map[Endpoint]prometheus.Counter
}

// New creates the counters and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Counters {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	newCounter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		reg.MustRegister(c)
		return c
	}

	return &Counters{
		registry: reg,
		total:    newCounter("server_requests_total", "Total number of requests to this webserver"),
		byEndpoint: map[Endpoint]prometheus.Counter{
			Health:        newCounter("healthcheck_requests_total", "Total number of requests to healthcheck"),
			Greeting:      newCounter("main_requests_total", "Total number of requests to main endpoint"),
			StudentCreate: newCounter("students_create_total", "Total number of requests to the endpoint for create a student"),
			Joke:          newCounter("joke_requests_total", "Total number of requests to joke endpoint"),
		},
	}
}

// Observe records one handled request for e: the total and the endpoint
// counter each go up by exactly one.
func (c *Counters) Observe(e Endpoint) {
	c.total.Inc()
	if ec, ok := c.byEndpoint[e]; ok {
		ec.Inc()
	}
}

// Total exposes the global counter, mainly for tests.
func (c *Counters) Total() prometheus.Counter { return c.total }

// For exposes the counter of a single endpoint, or nil if unknown.
func (c *Counters) For(e Endpoint) prometheus.Counter { return c.byEndpoint[e] }

// Handler serves the registry in the Prometheus text exposition format.
func (c *Counters) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// NewServer builds the scrape listener. It runs on its own port, apart
// from the API, and has no authentication.
func NewServer(addr string, c *Counters) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", c.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
