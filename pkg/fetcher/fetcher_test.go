package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeFetcher returns scripted errors and records call times.
type fakeFetcher struct {
	mu     sync.Mutex
	errs   []error // returned in order; nil once exhausted
	calls  int
	times  []time.Time
	closed bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ Options) (Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.times = append(f.times, time.Now())
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return Content{URL: url}, err
		}
	}
	return Content{URL: url, HTML: "<html></html>", StatusCode: 200}, nil
}

func (f *fakeFetcher) Close() error {
	f.closed = true
	return nil
}

func (f *fakeFetcher) Type() string { return "fake" }

// --- StaticFetcher Tests ---

func TestStaticFetcher_Fetch_OK(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title> Jon Jones | UFC </title></head><body></body></html>`)
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{UserAgent: "athletescrape-test"})
	content, err := f.Fetch(context.Background(), srv.URL+"/athlete/jon-jones", Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", content.StatusCode)
	}
	if content.Title != "Jon Jones | UFC" {
		t.Errorf("unexpected title %q", content.Title)
	}
	if gotUA != "athletescrape-test" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}
	if gotLang != "en-US,en;q=0.9" {
		t.Errorf("expected browser Accept-Language header, got %q", gotLang)
	}

	doc, err := content.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Find("title").Length() != 1 {
		t.Error("expected parsed document to contain the title")
	}
}

func TestStaticFetcher_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewStatic(DefaultStaticConfig())
	_, err := f.Fetch(context.Background(), srv.URL+"/athletes/all?page=9", Options{})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 StatusError, got %v", err)
	}
	if statusErr.Temporary() {
		t.Error("404 should not be temporary")
	}
}

func TestStaticFetcher_Fetch_CustomHeaders(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Test")
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	f := NewStatic(DefaultStaticConfig())
	if _, err := f.Fetch(context.Background(), srv.URL, Options{Headers: map[string]string{"X-Test": "1"}}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "1" {
		t.Errorf("expected custom header, got %q", got)
	}
}

func TestStaticFetcher_Type(t *testing.T) {
	if got := NewStatic(StaticConfig{}).Type(); got != "static" {
		t.Errorf("expected static, got %q", got)
	}
}

func TestStatusError_Temporary(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		e := &StatusError{URL: "u", StatusCode: tt.code}
		if got := e.Temporary(); got != tt.want {
			t.Errorf("Temporary() for %d = %v, want %v", tt.code, got, tt.want)
		}
	}
}

// --- Throttled Tests ---

func TestThrottled_EnforcesMinimumInterval(t *testing.T) {
	const interval = 40 * time.Millisecond
	inner := &fakeFetcher{}
	f := Throttle(inner, NewLimiter(interval))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = f.Fetch(context.Background(), fmt.Sprintf("https://example.com/%d", n), Options{})
		}(i)
	}
	wg.Wait()

	if inner.calls != 4 {
		t.Fatalf("expected 4 calls, got %d", inner.calls)
	}
	// Allow a little scheduler slack below the nominal interval.
	slack := 5 * time.Millisecond
	for i := 1; i < len(inner.times); i++ {
		gap := inner.times[i].Sub(inner.times[i-1])
		if gap < interval-slack {
			t.Errorf("requests %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestThrottled_ContextCancelled(t *testing.T) {
	inner := &fakeFetcher{}
	f := Throttle(inner, NewLimiter(time.Hour))

	// First request consumes the only token.
	if _, err := f.Fetch(context.Background(), "https://example.com/a", Options{}); err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "https://example.com/b", Options{}); err == nil {
		t.Error("expected error when context is cancelled while waiting")
	}
	if inner.calls != 1 {
		t.Errorf("expected no second request, got %d calls", inner.calls)
	}
}

func TestThrottled_NoInterval(t *testing.T) {
	inner := &fakeFetcher{}
	f := Throttle(inner, NewLimiter(0))

	start := time.Now()
	for i := 0; i < 10; i++ {
		if _, err := f.Fetch(context.Background(), "https://example.com", Options{}); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}
	if time.Since(start) > time.Second {
		t.Error("zero interval should not throttle")
	}
	if f.Type() != "fake" {
		t.Errorf("expected wrapped type, got %q", f.Type())
	}
	_ = f.Close()
	if !inner.closed {
		t.Error("Close should reach the wrapped fetcher")
	}
}

// --- Retrying Tests ---

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetrying_RecoversFromTransientErrors(t *testing.T) {
	inner := &fakeFetcher{errs: []error{
		errors.New("connection reset"),
		&StatusError{URL: "u", StatusCode: http.StatusServiceUnavailable},
	}}
	f := Retry(inner, fastRetry(3))

	content, err := f.Fetch(context.Background(), "https://example.com", Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.StatusCode != 200 {
		t.Errorf("expected successful content, got %+v", content)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetrying_DoesNotRetryClientErrors(t *testing.T) {
	inner := &fakeFetcher{errs: []error{&StatusError{URL: "u", StatusCode: http.StatusNotFound}}}
	f := Retry(inner, fastRetry(3))

	_, err := f.Fetch(context.Background(), "https://example.com", Options{})
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected status error, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected a single attempt, got %d", inner.calls)
	}
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("timeout")
	inner := &fakeFetcher{errs: []error{boom, boom, boom, boom, boom}}
	f := Retry(inner, fastRetry(2))

	_, err := f.Fetch(context.Background(), "https://example.com", Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", inner.calls)
	}
}

func TestRetrying_EachAttemptIsThrottled(t *testing.T) {
	const interval = 30 * time.Millisecond
	boom := errors.New("timeout")
	inner := &fakeFetcher{errs: []error{boom, boom}}
	f := Retry(Throttle(inner, NewLimiter(interval)), fastRetry(3))

	if _, err := f.Fetch(context.Background(), "https://example.com", Options{}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
	slack := 5 * time.Millisecond
	for i := 1; i < len(inner.times); i++ {
		if gap := inner.times[i].Sub(inner.times[i-1]); gap < interval-slack {
			t.Errorf("retry %d issued %v after previous attempt", i, gap)
		}
	}
}
