package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/athletescrape/internal/logger"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // bytes, 0 = colly default
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// StaticFetcher uses Colly for static HTML fetching.
// It implements the Fetcher interface.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultStaticConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultStaticConfig().Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves page content using Colly.
// Non-2xx responses are reported as *StatusError.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	// Create a new collector for each request
	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	collectorOpts := []colly.CollectorOption{
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	}
	if f.config.MaxBodySize > 0 {
		collectorOpts = append(collectorOpts, colly.MaxBodySize(f.config.MaxBodySize))
	}
	c := colly.NewCollector(collectorOpts...)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range browserHeaders {
			r.Headers.Set(k, v)
		}
		for k, v := range opts.Headers {
			r.Headers.Set(k, v)
		}
	})

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.Text)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			result.StatusCode = r.StatusCode
			fetchErr = &StatusError{URL: targetURL, StatusCode: r.StatusCode}
		} else {
			fetchErr = fmt.Errorf("fetch error: %w", err)
		}
		logger.Debug("static fetch error", "url", targetURL, "status", result.StatusCode, "error", err)
	})

	visitErr := c.Visit(targetURL)
	if fetchErr != nil {
		return result, fetchErr
	}
	if visitErr != nil {
		return result, fmt.Errorf("failed to visit URL: %w", visitErr)
	}

	logger.Debug("static fetch complete", "url", targetURL, "status", result.StatusCode, "title", result.Title)
	return result, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}
