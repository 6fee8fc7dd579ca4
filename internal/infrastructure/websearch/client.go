package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shopscout/backend/internal/domain"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com"
	defaultNumResults = 10
	maxNumResults     = 10
	maxErrorBody      = 512
	maxResponseBody   = 4 << 20 // larger bodies are cut off and fail to decode
)

// ClientConfig holds credentials and limits for the search API
type ClientConfig struct {
	APIKey            string
	EngineID          string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the Google Custom Search JSON API. Each call is a single
// attempt; callers decide what a failure means.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	engineID    string
	baseURL     string
	rateLimiter *rate.Limiter
	log         zerolog.Logger
}

// NewClient creates a new search API client
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	// The free tier allows 100 queries per day; the default keeps bursts
	// small and leaves the daily budget to configuration.
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		engineID:    cfg.EngineID,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:         log.With().Str("component", "websearch").Logger(),
	}
}

// Enabled reports whether both credentials are present
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != "" && c.engineID != ""
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShopScout/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	return resp, nil
}

// Search runs one query against the search API
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: search API credentials not configured", domain.ErrSourceUnavailable)
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidRequest)
	}

	num := req.NumResults
	if num <= 0 {
		num = defaultNumResults
	}
	if num > maxNumResults {
		num = maxNumResults
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", req.Query)
	params.Set("num", strconv.Itoa(num))
	reqURL := fmt.Sprintf("%s/customsearch/v1?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrSearchAPIFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrSearchAPIFailure, resp.StatusCode, truncate(body, maxErrorBody))
	}

	var searchResp domain.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	c.log.Debug().
		Str("query", req.Query).
		Int("items", len(searchResp.Items)).
		Dur("took", time.Since(start)).
		Msg("search API responded")

	return &searchResp, nil
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
