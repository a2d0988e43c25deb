package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"apod_fetcher/internal/domain"
)

const (
	opToday  = "today"
	opRange  = "range"
	opRandom = "random"

	userAgent = "ApodFetcher/1.0"
)

// Config holds APOD client configuration.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	RateLimitPerHour int
	RateBurst        int
	MaxAttempts      int
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
}

// Client issues read-only calls against the APOD API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new APOD client.
func New(cfg Config, logger *slog.Logger) *Client {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerHour > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Every(time.Hour/time.Duration(cfg.RateLimitPerHour)), burst)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:        cfg.BaseURL,
		limiter:        limiter,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", "apod"),
	}
}

// FetchToday fetches the service's photo of the day.
func (c *Client) FetchToday(ctx context.Context, apiKey string) (*domain.PhotoRecord, error) {
	params := url.Values{}
	params.Set("api_key", apiKey)

	var photo APIPhoto
	if err := c.get(ctx, opToday, params, &photo); err != nil {
		return nil, err
	}
	if photo.Date == "" {
		return nil, &domain.RemoteFetchError{Op: opToday, Err: errors.New("response has no date")}
	}

	record := photo.toDomain()
	return &record, nil
}

// FetchRange fetches every entry dated between start and end inclusive.
func (c *Client) FetchRange(ctx context.Context, apiKey, start, end string) ([]domain.PhotoRecord, error) {
	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("thumbs", "true")

	return c.getList(ctx, opRange, params)
}

// FetchRandom fetches count entries picked at random by the service.
func (c *Client) FetchRandom(ctx context.Context, apiKey string, count int) ([]domain.PhotoRecord, error) {
	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("count", strconv.Itoa(count))
	params.Set("thumbs", "true")

	return c.getList(ctx, opRandom, params)
}

func (c *Client) getList(ctx context.Context, op string, params url.Values) ([]domain.PhotoRecord, error) {
	var photos []APIPhoto
	if err := c.get(ctx, op, params, &photos); err != nil {
		return nil, err
	}

	records := make([]domain.PhotoRecord, 0, len(photos))
	for _, p := range photos {
		if p.Date == "" {
			return nil, &domain.RemoteFetchError{Op: op, Err: errors.New("response entry has no date")}
		}
		records = append(records, p.toDomain())
	}

	c.logger.Debug("fetched photos", "op", op, "count", len(records))

	return records, nil
}

func (c *Client) get(ctx context.Context, op string, params url.Values, out any) error {
	reqURL := c.baseURL + "?" + params.Encode()

	var status int
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		status, err = c.doRequest(ctx, reqURL, out)
		if err == nil {
			return nil
		}

		if attempt == c.maxAttempts || !retryable(status) {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"op", op,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return &domain.RemoteFetchError{Op: op, Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}

	return &domain.RemoteFetchError{Op: op, Status: status, Err: err}
}

func (c *Client) doRequest(ctx context.Context, reqURL string, out any) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.logger.Debug("rate limit remaining", "remaining", remaining)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return resp.StatusCode, nil
}

// retryable reports whether a failed attempt is worth repeating. Transport
// errors carry no status.
func retryable(status int) bool {
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
