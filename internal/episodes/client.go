package episodes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"stardate/internal/config"
	"stardate/internal/stardate"
)

// Fetcher produces the episode title mapping.
type Fetcher interface {
	FetchTitles(ctx context.Context) (stardate.Titles, error)
}

// Client scrapes episode titles from an HTML episode list.
type Client struct {
	sourceURL  string
	selector   string
	userAgent  string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithSelector overrides the CSS selector that matches one title per episode.
func WithSelector(selector string) Option {
	return func(c *Client) {
		if selector = strings.TrimSpace(selector); selector != "" {
			c.selector = selector
		}
	}
}

// New creates a scraper for the page at sourceURL.
func New(sourceURL string, opts ...Option) (*Client, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, errors.New("episode list url required")
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid episode list url %q", sourceURL)
	}
	client := &Client{
		sourceURL:  sourceURL,
		selector:   "td.summary",
		userAgent:  "stardate",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a Client from the [episodes] configuration section.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	timeout := time.Duration(cfg.Episodes.TimeoutSeconds) * time.Second
	return New(cfg.Episodes.SourceURL,
		WithSelector(cfg.Episodes.Selector),
		WithUserAgent(cfg.Episodes.UserAgent),
		WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// SourceURL returns the page the client scrapes.
func (c *Client) SourceURL() string {
	return c.sourceURL
}

// FetchTitles downloads the episode list and parses it. The body is decoded
// according to the charset the server declares.
func (c *Client) FetchTitles(ctx context.Context) (stardate.Titles, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, stardate.Wrap(stardate.ErrTransient, "episodes", "fetch",
			fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, stardate.Wrap(stardate.ErrTransient, "episodes", "fetch",
			fmt.Sprintf("episode list returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode episode list: %w", err)
	}
	return ParseTitles(body, c.selector)
}
