// Package joke fetches a random joke from an external HTTP provider.
//
// The provider answers GET with {"setup": "...", "punchline": "...", ...}.
// Every call is a single request bounded by the client timeout; there is
// no retry.
package joke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUpstream is returned (wrapped) for any failure to get a usable joke.
var ErrUpstream = errors.New("joke provider failed")

// Joke is what the provider returns, reduced to the fields we serve.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Fetcher is what the handler needs from a joke source.
type Fetcher interface {
	Fetch(ctx context.Context) (Joke, error)
}

// Client talks to one fixed provider URL.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for url whose requests give up after timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch gets one joke. Non-200 responses, transport errors, undecodable
// bodies and jokes with an empty part all wrap ErrUpstream.
func (c *Client) Fetch(ctx context.Context) (Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Joke{}, fmt.Errorf("joke.Fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return Joke{}, fmt.Errorf("joke.Fetch: %w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, res.Body)
		return Joke{}, fmt.Errorf("joke.Fetch: %w: status %d", ErrUpstream, res.StatusCode)
	}

	var j Joke
	if err := json.NewDecoder(res.Body).Decode(&j); err != nil {
		return Joke{}, fmt.Errorf("joke.Fetch: %w: decode: %v", ErrUpstream, err)
	}

	if j.Setup == "" || j.Punchline == "" {
		return Joke{}, fmt.Errorf("joke.Fetch: %w: incomplete joke", ErrUpstream)
	}

	return j, nil
}
