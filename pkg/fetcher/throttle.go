package fetcher

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter releasing one request per interval.
// A non-positive interval disables throttling.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Throttled waits on a shared limiter before every request, so the minimum
// interval holds across all goroutines sharing the limiter.
type Throttled struct {
	next    Fetcher
	limiter *rate.Limiter
}

// Throttle wraps next with limiter.
func Throttle(next Fetcher, limiter *rate.Limiter) *Throttled {
	return &Throttled{next: next, limiter: limiter}
}

// Fetch waits for the limiter and delegates to the wrapped fetcher.
func (t *Throttled) Fetch(ctx context.Context, url string, opts Options) (Content, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return Content{URL: url}, fmt.Errorf("rate limiter wait: %w", err)
	}
	return t.next.Fetch(ctx, url, opts)
}

// Close closes the wrapped fetcher.
func (t *Throttled) Close() error {
	return t.next.Close()
}

// Type returns the wrapped fetcher type.
func (t *Throttled) Type() string {
	return t.next.Type()
}
