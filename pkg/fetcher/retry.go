package fetcher

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jmylchreest/athletescrape/internal/logger"
)

// RetryConfig controls the retry policy.
type RetryConfig struct {
	MaxRetries      int           // retries after the first attempt
	InitialInterval time.Duration // first backoff interval
	MaxInterval     time.Duration // backoff ceiling
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// Retrying retries transient fetch failures with exponential backoff.
// Client errors (4xx other than 429) are returned immediately.
type Retrying struct {
	next   Fetcher
	config RetryConfig
}

// Retry wraps next with the retry policy.
func Retry(next Fetcher, cfg RetryConfig) *Retrying {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultRetryConfig().InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultRetryConfig().MaxInterval
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Retrying{next: next, config: cfg}
}

// Fetch delegates to the wrapped fetcher, retrying transient failures.
func (r *Retrying) Fetch(ctx context.Context, url string, opts Options) (Content, error) {
	attempt := 0
	operation := func() (Content, error) {
		attempt++
		content, err := r.next.Fetch(ctx, url, opts)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return content, backoff.Permanent(err)
		}
		return content, err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.config.InitialInterval
	expo.MaxInterval = r.config.MaxInterval
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(r.config.MaxRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		logger.Debug("fetch failed, retrying", "url", url, "attempt", attempt, "wait", wait, "error", err)
	}

	return backoff.RetryNotifyWithData(operation, policy, notify)
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// Close closes the wrapped fetcher.
func (r *Retrying) Close() error {
	return r.next.Close()
}

// Type returns the wrapped fetcher type.
func (r *Retrying) Type() string {
	return r.next.Type()
}
