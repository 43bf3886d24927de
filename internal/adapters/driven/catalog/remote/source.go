// Package remote fetches the block type catalog over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.BlockCatalogSource = (*Source)(nil)

// maxBodyBytes caps the catalog response size.
const maxBodyBytes = 4 << 20

// Config configures a remote catalog source.
type Config struct {
	// URL of the endpoint. It must answer GET with a JSON array of block
	// type definitions.
	URL string

	// RequestsPerSecond is the sustained fetch rate.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int

	// Timeout bounds one HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the first retry delay; it doubles per attempt up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultConfig returns conservative defaults for url.
func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		RequestsPerSecond: 2,
		Burst:             2,
		Timeout:           10 * time.Second,
		MaxRetries:        2,
		BaseDelay:         200 * time.Millisecond,
		MaxDelay:          2 * time.Second,
	}
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether retrying can help.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Source fetches the catalog from an HTTP endpoint.
type Source struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// New creates a remote catalog source.
func New(cfg Config) (*Source, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: catalog url is required", domain.ErrInvalidInput)
	}
	defaults := DefaultConfig(cfg.URL)
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaults.BaseDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}

	return &Source{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// FetchBlockTypeCatalog downloads the catalog, retrying transient failures.
func (s *Source) FetchBlockTypeCatalog(ctx context.Context) ([]domain.BlockTypeDefinition, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}

		defs, err := s.fetch(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Debug("catalog fetch succeeded on attempt %d", attempt+1)
			}
			return defs, nil
		}
		lastErr = err

		if !retryable(err) || attempt == s.cfg.MaxRetries {
			break
		}
		delay := s.backoff(attempt)
		logger.Debug("catalog fetch attempt %d failed (%v), retrying in %v", attempt+1, err, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetching %s: %w", s.cfg.URL, lastErr)
}

func (s *Source) fetch(ctx context.Context) ([]domain.BlockTypeDefinition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
		if resp.StatusCode == http.StatusTooManyRequests {
			s.recordRateLimit(statusErr.RetryAfter)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	var defs []domain.BlockTypeDefinition
	if err := json.Unmarshal(body, &defs); err != nil {
		return nil, &decodeError{err: err}
	}
	return defs, nil
}

// wait honours a server-requested backoff, then the token bucket.
func (s *Source) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return s.limiter.Wait(ctx)
}

func (s *Source) recordRateLimit(after time.Duration) {
	if after <= 0 {
		after = s.cfg.MaxDelay
	}
	if after > time.Minute {
		after = time.Minute
	}
	s.mu.Lock()
	s.retryAt = time.Now().Add(after)
	s.mu.Unlock()
}

// backoff is exponential with 80-120% jitter, capped at MaxDelay.
func (s *Source) backoff(attempt int) time.Duration {
	delay := float64(s.cfg.BaseDelay) * math.Pow(2, float64(attempt))
	if delay > float64(s.cfg.MaxDelay) {
		delay = float64(s.cfg.MaxDelay)
	}
	delay *= 0.8 + rand.Float64()*0.4 //nolint:gosec // jitter does not need a CSPRNG
	return time.Duration(delay)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decoding catalog: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// retryable: server errors and transport failures are; client errors,
// malformed bodies and cancellation are not.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	var decErr *decodeError
	return !errors.As(err, &decErr)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return time.Until(t)
	}
	return 0
}
