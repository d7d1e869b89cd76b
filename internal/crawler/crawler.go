package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/pkg/fetcher"
)

// Config holds discovery configuration.
type Config struct {
	ProfilePrefix string // path prefix of profile links (default "/athlete/")
	PageParam     string // zero-based page query parameter (default "page")
	MaxPages      int    // max listing pages to scan (0 = unlimited)
	Fetch         fetcher.Options
}

// DefaultConfig returns sensible discovery defaults.
func DefaultConfig() Config {
	return Config{
		ProfilePrefix: DefaultProfilePrefix,
		PageParam:     "page",
		MaxPages:      0, // unlimited
	}
}

// Discoverer walks a paginated listing and collects profile URLs.
//
// The listing gives no "last page" signal, so discovery stops at the first
// page that contributes no previously unseen profile, or at the first page
// that cannot be fetched.
type Discoverer struct {
	fetcher  fetcher.Fetcher
	selector *ProfileSelector
	config   Config
}

// New creates a Discoverer.
func New(f fetcher.Fetcher, cfg Config) (*Discoverer, error) {
	if cfg.PageParam == "" {
		cfg.PageParam = DefaultConfig().PageParam
	}
	selector, err := NewProfileSelector(cfg.ProfilePrefix)
	if err != nil {
		return nil, err
	}
	return &Discoverer{
		fetcher:  f,
		selector: selector,
		config:   cfg,
	}, nil
}

// Discover scans listingURL page by page and returns the profile URLs found,
// in first-seen order. Each call starts from an empty seen set.
//
// A failure on the first page is returned as an error: the site is
// unreachable. Later failures end discovery normally. On cancellation the
// profiles found so far are returned along with the context error.
func (d *Discoverer) Discover(ctx context.Context, listingURL string) ([]string, error) {
	logger.Debug("discovery starting",
		"listing", listingURL,
		"prefix", d.selector.Prefix,
		"max_pages", d.config.MaxPages)

	seen := NewSeenSet()
	var profiles []string
	start := time.Now()
	page := 0

	for ; d.config.MaxPages <= 0 || page < d.config.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return profiles, err
		}

		pageURL, err := d.pageURL(listingURL, page)
		if err != nil {
			return nil, err
		}

		content, err := d.fetcher.Fetch(ctx, pageURL, d.config.Fetch)
		if err != nil {
			if ctx.Err() != nil {
				return profiles, ctx.Err()
			}
			if page == 0 {
				return nil, fmt.Errorf("failed to fetch first listing page: %w", err)
			}
			logger.Info("listing page unavailable, ending discovery", "page", page, "error", err)
			break
		}

		links, err := d.selector.ExtractLinks(content.HTML, pageURL)
		if err != nil {
			logger.Info("listing page unreadable, ending discovery", "page", page, "error", err)
			break
		}

		fresh := 0
		for _, link := range links {
			if seen.Add(link) {
				profiles = append(profiles, link)
				fresh++
			}
		}

		logger.Info("listing page scanned",
			"page", page,
			"links", len(links),
			"new", fresh,
			"total", len(profiles))

		if fresh == 0 {
			break
		}
	}

	logger.Info("discovery complete",
		"profiles", len(profiles),
		"pages", page+1,
		"duration", time.Since(start).Round(time.Millisecond))

	return profiles, nil
}

// pageURL sets the page parameter on listingURL, keeping other parameters.
func (d *Discoverer) pageURL(listingURL string, page int) (string, error) {
	u, err := url.Parse(listingURL)
	if err != nil {
		return "", fmt.Errorf("invalid listing URL %q: %w", listingURL, err)
	}
	q := u.Query()
	q.Set(d.config.PageParam, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
