// Package upstream executes rate-limited, retried GET requests against the
// remote nutrition APIs.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/platewise/backend/internal/domain"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond
	defaultBurst       = 10

	// maxBodyBytes bounds how much of an upstream response is read
	maxBodyBytes = 5 << 20
)

// StatusError reports a non-200 upstream response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", domain.ErrUpstreamFailure, e.StatusCode)
}

// Unwrap lets callers match StatusError with errors.Is(err, domain.ErrUpstreamFailure)
func (e *StatusError) Unwrap() error {
	return domain.ErrUpstreamFailure
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Config configures a Requester
type Config struct {
	Name              string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Requester performs GET requests with a shared rate limiter and retries
// transient failures (transport errors, 429 and 5xx) with exponential backoff.
type Requester struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	maxAttempts int
	backoffBase time.Duration
	debug       bool
	logger      zerolog.Logger
}

// NewRequester creates a new Requester
func NewRequester(cfg Config, logger zerolog.Logger) *Requester {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	}

	return &Requester{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(limit, defaultBurst),
		userAgent:   cfg.UserAgent,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		logger:      logger.With().Str("component", cfg.Name).Logger(),
	}
}

// SetDebug enables or disables debug logging of requests
func (r *Requester) SetDebug(debug bool) {
	r.debug = debug
}

// Get fetches reqURL and returns the response body of a 200 response.
// Non-200 responses are returned as *StatusError; 4xx other than 429 are not retried.
func (r *Requester) Get(ctx context.Context, reqURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(reqURL); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, exponentialBackoff(r.backoffBase, attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := r.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := r.do(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !retryable(se.StatusCode) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}

		r.logger.Warn().Err(err).Int("attempt", attempt).Msg("upstream request failed")
	}

	r.logger.Error().Err(lastErr).Int("attempts", r.maxAttempts).Msg("all retries failed")
	return nil, lastErr
}

func (r *Requester) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	r.debugLog("GET %s", req.URL.Path)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, err)
	}

	r.debugLog("status %d, %d bytes", resp.StatusCode, len(body))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (r *Requester) debugLog(format string, args ...interface{}) {
	if r.debug {
		r.logger.Debug().Msgf(format, args...)
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// exponentialBackoff returns the wait before retry number attempt (1-based)
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
