// Package crawler discovers athlete profile links on a paginated listing.
package crawler

import (
	"net/url"
	"sync"
)

// SeenSet records profile URLs already discovered, so that entries repeated
// across listing pages are counted once.
type SeenSet struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]bool)}
}

// Add records rawURL and reports whether it was new.
// Invalid URLs are never added.
func (s *SeenSet) Add(rawURL string) bool {
	normalized := normalizeURL(rawURL)
	if normalized == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[normalized] {
		return false
	}
	s.seen[normalized] = true
	return true
}

// Contains reports whether rawURL has been recorded.
func (s *SeenSet) Contains(rawURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[normalizeURL(rawURL)]
}

// Len returns the number of recorded URLs.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// normalizeURL normalizes a URL for comparison.
func normalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		return ""
	}

	parsed.Fragment = ""

	// Remove trailing slash from path (unless it's just "/")
	if len(parsed.Path) > 1 && parsed.Path[len(parsed.Path)-1] == '/' {
		parsed.Path = parsed.Path[:len(parsed.Path)-1]
	}

	return parsed.String()
}
