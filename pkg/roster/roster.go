// Package roster scrapes an athlete roster: it discovers profile pages on a
// paginated listing, extracts a record from each and collects the results.
package roster

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/jmylchreest/athletescrape/internal/crawler"
	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/pkg/extractor"
	"github.com/jmylchreest/athletescrape/pkg/fetcher"
)

// ErrPanic wraps a panic recovered while extracting a single profile.
var ErrPanic = errors.New("extraction panicked")

var validate = validator.New()

// Result is the outcome of extracting one profile.
type Result struct {
	URL      string
	Index    int // position in the input URL list
	Record   *extractor.Record
	Duration time.Duration
	Error    error
}

// Scraper is the main entry point for roster scraping.
type Scraper struct {
	config     Config
	listingURL string
	fetcher    fetcher.Fetcher
	discoverer *crawler.Discoverer
	extractor  *extractor.Extractor
}

// New creates a Scraper. Every request it makes, listing or profile, passes
// one shared rate limiter.
func New(opts ...Option) (*Scraper, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	listingURL, err := resolve(cfg.BaseURL, cfg.ListingPath)
	if err != nil {
		return nil, err
	}

	base := cfg.Fetcher
	if base == nil {
		switch cfg.FetchMode {
		case FetchModeDynamic:
			base = fetcher.NewDynamic(fetcher.DynamicConfig{
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.Timeout,
			})
		default:
			base = fetcher.NewStatic(fetcher.StaticConfig{
				UserAgent:   cfg.UserAgent,
				Timeout:     cfg.Timeout,
				MaxBodySize: cfg.MaxBodySize,
			})
		}
	}

	retryCfg := fetcher.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	if cfg.RetryInterval > 0 {
		retryCfg.InitialInterval = cfg.RetryInterval
	}
	f := fetcher.Retry(fetcher.Throttle(base, fetcher.NewLimiter(cfg.Delay)), retryCfg)

	fetchOpts := fetcher.Options{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout}

	d, err := crawler.New(f, crawler.Config{
		ProfilePrefix: cfg.ProfilePrefix,
		MaxPages:      cfg.MaxPages,
		Fetch:         fetchOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discoverer: %w", err)
	}

	extOpts := cfg.ExtractorOptions
	if cfg.Rules != nil {
		extOpts = append([]extractor.Option{extractor.WithRules(*cfg.Rules)}, extOpts...)
	}
	ext, err := extractor.New(cfg.BaseURL, extOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	logger.Debug("scraper created",
		"listing", listingURL,
		"fetcher", f.Type(),
		"delay", cfg.Delay,
		"concurrency", cfg.Concurrency,
		"image_tiers", ext.Cascade().Name())

	return &Scraper{
		config:     cfg,
		listingURL: listingURL,
		fetcher:    f,
		discoverer: d,
		extractor:  ext,
	}, nil
}

// ListingURL returns the absolute URL of the athlete listing.
func (s *Scraper) ListingURL() string {
	return s.listingURL
}

// Config returns the effective configuration.
func (s *Scraper) Config() Config {
	return s.config
}

// Discover returns the profile URLs on the listing, capped at MaxProfiles.
func (s *Scraper) Discover(ctx context.Context) ([]string, error) {
	urls, err := s.discoverer.Discover(ctx, s.listingURL)
	if s.config.MaxProfiles > 0 && len(urls) > s.config.MaxProfiles {
		logger.Info("limiting profiles", "discovered", len(urls), "max", s.config.MaxProfiles)
		urls = urls[:s.config.MaxProfiles]
	}
	return urls, err
}

// ExtractURL fetches a single profile and extracts its record.
// It returns an error wrapping extractor.ErrNoName when the page has no name,
// and a validation error when the record is malformed.
func (s *Scraper) ExtractURL(ctx context.Context, profileURL string) (*extractor.Record, error) {
	content, err := s.fetcher.Fetch(ctx, profileURL, fetcher.Options{
		UserAgent: s.config.UserAgent,
		Timeout:   s.config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	doc, err := content.Document()
	if err != nil {
		return nil, err
	}

	rec, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", profileURL, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", profileURL, err)
	}
	return rec, nil
}

// Scrape extracts records from urls, at most Concurrency at a time.
//
// Failures are reported per profile and never stop the run. Once ctx is
// cancelled no further profiles are started, and profiles interrupted by the
// cancellation are dropped rather than reported as failures. The channel is
// closed when all started profiles have finished; callers must drain it.
func (s *Scraper) Scrape(ctx context.Context, urls []string) <-chan Result {
	results := make(chan Result, s.config.Concurrency)

	go func() {
		defer close(results)

		p := pool.New().WithMaxGoroutines(s.config.Concurrency)
		for i, u := range urls {
			if ctx.Err() != nil {
				break
			}
			p.Go(func() {
				if ctx.Err() != nil {
					return
				}
				res := s.extractOne(ctx, i, u)
				if res.Error != nil && ctx.Err() != nil {
					logger.Debug("profile interrupted", "url", u)
					return
				}
				results <- res
			})
		}
		p.Wait()
	}()

	return results
}

// Run discovers the roster and extracts every profile into coll.
// On cancellation the records collected so far stay in coll and the context
// error is returned.
func (s *Scraper) Run(ctx context.Context, coll *Collection) error {
	urls, err := s.Discover(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if len(urls) == 0 {
		if ctx.Err() == nil {
			logger.Warn("no athlete profiles found", "listing", s.listingURL)
		}
		return ctx.Err()
	}

	coll.Consume(s.Scrape(ctx, urls), len(urls))
	return ctx.Err()
}

// Close releases transport resources.
func (s *Scraper) Close() error {
	return s.fetcher.Close()
}

func (s *Scraper) extractOne(ctx context.Context, index int, profileURL string) (res Result) {
	res = Result{URL: profileURL, Index: index}
	start := time.Now()

	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			logger.Error("profile extraction panicked", "url", profileURL, "panic", r)
			res.Record = nil
			res.Error = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	res.Record, res.Error = s.ExtractURL(ctx, profileURL)
	return res
}

func resolve(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	p, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid listing path %q: %w", path, err)
	}
	return b.ResolveReference(p).String(), nil
}
