package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/athletescrape/internal/logger"
)

// DynamicConfig holds configuration for the dynamic fetcher.
type DynamicConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DynamicFetcher uses chromedp for listings that render athlete cards with
// JavaScript.
type DynamicFetcher struct {
	config    DynamicConfig
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamic creates a new dynamic fetcher with a browser allocator.
// The browser itself is started lazily on the first fetch.
func NewDynamic(cfg DynamicConfig) *DynamicFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultStaticConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	logger.Debug("dynamic fetcher browser allocator created", "user_agent", cfg.UserAgent, "timeout", cfg.Timeout)

	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}
}

// Fetch retrieves page content using a headless browser.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("dynamic fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	// Abort the browser run when the caller gives up.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	waitSelector := coalesce(opts.WaitForSelector, "body")
	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible(waitSelector),
	}
	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}

	var html, title string
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
	)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("browser automation cancelled: %w", ctx.Err())
		}
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	result.HTML = html
	result.Title = title
	result.StatusCode = 200 // chromedp doesn't easily expose status codes
	result.ContentType = "text/html"

	logger.Debug("dynamic fetch complete", "url", targetURL, "html_size", len(html), "title", title)
	return result, nil
}

// Close releases browser resources.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
