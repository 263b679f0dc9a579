package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher is implemented by Client; consumers depend on it for testing.
type Fetcher interface {
	Fetch(ctx context.Context, externalID int, endpoint Endpoint) (*Metadata, error)
}

// Client fetches title metadata from the Jikan API.
//
// The API quota is global, so one Client is shared by every job in the
// process. Calls are serialized and spaced by at least the configured
// interval, successful or not.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
	maxAttempts int
	backoff     time.Duration

	mu      sync.Mutex
	limiter *rate.Limiter
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces the wall clock and the sleep function.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.now = now
		c.sleep = sleep
	}
}

// NewClient creates a metadata client.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	limit := rate.Inf
	if iv := cfg.interval(); iv > 0 {
		limit = rate.Every(iv)
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.timeout()},
		logger:      logger,
		maxAttempts: cfg.attempts(),
		backoff:     cfg.backoff(),
		limiter:     rate.NewLimiter(limit, 1),
		now:         time.Now,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the metadata of one title. Errors are ErrNotFound or *FetchError.
func (c *Client) Fetch(ctx context.Context, externalID int, endpoint Endpoint) (*Metadata, error) {
	if endpoint != EndpointManga {
		endpoint = EndpointAnime
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	url := fmt.Sprintf("%s/%s/%d", c.baseURL, endpoint, externalID)
	l := c.logger.With(zap.Int("external_id", externalID), zap.String("endpoint", string(endpoint)))

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.wait(ctx); err != nil {
			return nil, &FetchError{ExternalID: externalID, Endpoint: endpoint, Attempts: attempt - 1, Err: err}
		}

		status, body, err := c.get(ctx, url)
		if err != nil {
			l.Error("Metadata request failed", zap.Error(err))
			return nil, &FetchError{ExternalID: externalID, Endpoint: endpoint, Attempts: attempt, Err: err}
		}

		switch {
		case status == http.StatusOK:
			var env envelope
			if err := json.Unmarshal(body, &env); err != nil {
				return nil, &FetchError{ExternalID: externalID, Endpoint: endpoint, Attempts: attempt, Err: fmt.Errorf("failed to decode response: %w", err)}
			}
			if env.Data == nil {
				return nil, fmt.Errorf("%w: %s %d", ErrNotFound, endpoint, externalID)
			}
			return env.Data.toMetadata(externalID, endpoint), nil

		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s %d", ErrNotFound, endpoint, externalID)

		case status == http.StatusTooManyRequests:
			wait := time.Duration(attempt) * c.backoff
			l.Warn("Rate limited by metadata API",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.maxAttempts),
				zap.Duration("backoff", wait))
			if err := c.sleep(ctx, wait); err != nil {
				return nil, &FetchError{ExternalID: externalID, Endpoint: endpoint, Attempts: attempt, RateLimited: true, Err: err}
			}

		default:
			l.Error("Unexpected metadata API status", zap.Int("status", status))
			return nil, &FetchError{ExternalID: externalID, Endpoint: endpoint, StatusCode: status, Attempts: attempt}
		}
	}

	l.Error("Metadata fetch gave up", zap.Int("attempts", c.maxAttempts))
	return nil, &FetchError{
		ExternalID:  externalID,
		Endpoint:    endpoint,
		StatusCode:  http.StatusTooManyRequests,
		Attempts:    c.maxAttempts,
		RateLimited: true,
	}
}

// wait blocks until the limiter admits the next call.
func (c *Client) wait(ctx context.Context) error {
	now := c.now()
	delay := c.limiter.ReserveN(now, 1).DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	return c.sleep(ctx, delay)
}

func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "media-tracker")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
