package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultProfilePrefix is the path prefix of athlete profile pages.
const DefaultProfilePrefix = "/athlete/"

// ProfileSelector extracts profile links from listing pages.
// A profile link is a path ending in the prefix followed by exactly one
// non-empty segment: "/athlete/jon-jones" matches, "/athlete/jon-jones/bio"
// and "/athletes/all" do not.
type ProfileSelector struct {
	Prefix  string
	pattern *regexp.Regexp
}

// NewProfileSelector creates a selector for the given path prefix.
func NewProfileSelector(prefix string) (*ProfileSelector, error) {
	if prefix == "" {
		prefix = DefaultProfilePrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	pattern, err := regexp.Compile(regexp.QuoteMeta(prefix) + `[^/]+$`)
	if err != nil {
		return nil, fmt.Errorf("invalid profile prefix %q: %w", prefix, err)
	}

	return &ProfileSelector{Prefix: prefix, pattern: pattern}, nil
}

// Matches reports whether href has the profile path shape.
func (ps *ProfileSelector) Matches(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return ps.pattern.MatchString(u.Path)
}

// ExtractLinks returns the absolute profile URLs linked from html, in
// document order, without duplicates.
func (ps *ProfileSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil || !ps.pattern.MatchString(linkURL.Path) {
			return
		}

		if !linkURL.IsAbs() {
			linkURL = base.ResolveReference(linkURL)
		}
		linkURL.Fragment = ""
		fullURL := linkURL.String()

		if seen[fullURL] {
			return
		}
		seen[fullURL] = true
		links = append(links, fullURL)
	})

	return links, nil
}
