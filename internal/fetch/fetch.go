// Package fetch retrieves the calendar page over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"finsk-kalender/internal/calendar"
	"finsk-kalender/internal/model"
)

const (
	// DefaultURL is the public calendar page of the Finnish Orthodox
	// Congregation in Sweden.
	DefaultURL = "https://www.ortodox-finsk.se/kalender/"

	// DefaultTimeout bounds a single fetch attempt.
	DefaultTimeout = 30 * time.Second

	userAgent = "finsk-kalender/1.0"
)

// Client fetches the calendar page. A single attempt, no retries: if the
// site is down the caller hears about it.
type Client struct {
	url    string
	client *http.Client
}

// New creates a Client for the given URL. An empty URL means DefaultURL;
// a non-positive timeout means DefaultTimeout.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the configured calendar page URL.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs a single GET against the calendar page and returns the
// body as UTF-8 text. Non-2xx responses are errors.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching calendar page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}

// Services fetches the calendar page and extracts its service records.
func (c *Client) Services(ctx context.Context) ([]model.ChurchService, error) {
	html, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.Extract(html), nil
}
