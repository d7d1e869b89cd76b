package extractor

import (
	"net/url"
	"strings"
)

// Normalize resolves an image or link reference found on a page into an
// absolute URL. Protocol-relative references get an https scheme, references
// without a scheme are resolved against base, and absolute URLs are returned
// unchanged. An empty reference yields an empty string.
//
// Normalize is idempotent: Normalize(Normalize(u, b), b) == Normalize(u, b).
func Normalize(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}

	baseURL, err := url.Parse(base)
	validBase := err == nil && baseURL.IsAbs()

	ref, err := url.Parse(raw)
	if err != nil {
		// Root-relative references with bad escapes are joined onto the
		// origin as text; anything else is kept verbatim.
		if validBase && strings.HasPrefix(raw, "/") {
			return baseURL.Scheme + "://" + baseURL.Host + raw
		}
		return raw
	}
	if ref.Scheme != "" || !validBase {
		return raw
	}

	return baseURL.ResolveReference(ref).String()
}
