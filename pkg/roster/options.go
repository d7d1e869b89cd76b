package roster

import (
	"time"

	"github.com/jmylchreest/athletescrape/internal/crawler"
	"github.com/jmylchreest/athletescrape/pkg/extractor"
	"github.com/jmylchreest/athletescrape/pkg/fetcher"
)

// FetchMode selects the transport.
type FetchMode string

const (
	FetchModeStatic  FetchMode = "static"  // plain HTTP via colly
	FetchModeDynamic FetchMode = "dynamic" // headless browser via chromedp
)

// Config holds all scraper configuration.
type Config struct {
	// Site
	BaseURL       string `validate:"required,url"`
	ListingPath   string `validate:"required,startswith=/"`
	ProfilePrefix string `validate:"required,startswith=/"`

	// Transport
	FetchMode     FetchMode     `validate:"oneof=static dynamic"`
	UserAgent     string        `validate:"omitempty,printascii"`
	Timeout       time.Duration `validate:"gt=0"`
	Delay         time.Duration `validate:"gte=0"` // minimum interval between any two requests
	MaxRetries    int           `validate:"gte=0"`
	RetryInterval time.Duration `validate:"gte=0"` // initial backoff, 0 = fetcher default
	MaxBodySize   int           `validate:"gte=0"` // bytes, 0 = unlimited

	// Crawl bounds
	Concurrency int `validate:"gte=1"`
	MaxPages    int `validate:"gte=0"` // 0 = until the listing runs dry
	MaxProfiles int `validate:"gte=0"` // 0 = all discovered

	// Extraction
	Rules            *extractor.Rules   `validate:"-"` // nil = built-in rules
	ExtractorOptions []extractor.Option `validate:"-"`

	// Fetcher replaces the colly/chromedp transport. It is still throttled
	// and retried.
	Fetcher fetcher.Fetcher `validate:"-"`
}

// Chrome user agent; the site serves reduced markup to unknown clients.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://www.ufc.com",
		ListingPath:   "/athletes/all",
		ProfilePrefix: crawler.DefaultProfilePrefix,
		FetchMode:     FetchModeStatic,
		UserAgent:     defaultUserAgent,
		Timeout:       30 * time.Second,
		Delay:         500 * time.Millisecond,
		MaxRetries:    3,
		Concurrency:   1,
	}
}

// Option configures a Scraper.
type Option func(*Config)

// WithBaseURL sets the site origin.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// WithListingPath sets the path of the paginated athlete listing.
func WithListingPath(p string) Option {
	return func(c *Config) {
		c.ListingPath = p
	}
}

// WithProfilePrefix sets the path prefix identifying profile links.
func WithProfilePrefix(p string) Option {
	return func(c *Config) {
		c.ProfilePrefix = p
	}
}

// WithFetchMode sets the fetch mode (static, dynamic).
func WithFetchMode(mode FetchMode) Option {
	return func(c *Config) {
		c.FetchMode = mode
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithDelay sets the minimum interval between requests.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		c.Delay = d
	}
}

// WithMaxRetries sets how often a transient fetch failure is retried.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithRetryInterval sets the initial retry backoff.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Config) {
		c.RetryInterval = d
	}
}

// WithMaxBodySize caps response bodies, in bytes.
func WithMaxBodySize(n int) Option {
	return func(c *Config) {
		c.MaxBodySize = n
	}
}

// WithConcurrency sets the number of profiles extracted in parallel.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithMaxPages caps the number of listing pages scanned.
func WithMaxPages(n int) Option {
	return func(c *Config) {
		c.MaxPages = n
	}
}

// WithMaxProfiles caps the number of profiles extracted.
func WithMaxProfiles(n int) Option {
	return func(c *Config) {
		c.MaxProfiles = n
	}
}

// WithRules replaces the built-in extraction rules.
func WithRules(rules extractor.Rules) Option {
	return func(c *Config) {
		c.Rules = &rules
	}
}

// WithExtractorOptions passes options through to the extractor.
func WithExtractorOptions(opts ...extractor.Option) Option {
	return func(c *Config) {
		c.ExtractorOptions = append(c.ExtractorOptions, opts...)
	}
}

// WithFetcher injects a custom transport.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}
