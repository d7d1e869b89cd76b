package extractor

import (
	"strings"
	"unicode/utf8"
)

// minFragmentLen is the shortest single name word used as a match fragment.
// Shorter words ("de", "da", "la") produce too many false positives.
const minFragmentLen = 3

// NamePattern is the set of upper-cased fragments derived from an athlete's
// name that a matching image URL is expected to contain.
//
// For "Jon Jones" the fragments are JONES_JON, JON_JONES, JONJONES,
// JONESJON, JON and JONES. Site image paths use either the underscore-joined
// or the concatenated convention, in either order.
type NamePattern struct {
	name      string
	fragments []string
}

// NewNamePattern derives the match fragments for name.
// Names with fewer than two words produce an empty pattern that never matches.
func NewNamePattern(name string) NamePattern {
	p := NamePattern{name: name}

	cleaned := strings.ToLower(name)
	cleaned = strings.NewReplacer("'", "", "’", "", "-", "_").Replace(cleaned)
	parts := strings.Fields(cleaned)
	if len(parts) < 2 {
		return p
	}

	first, last := parts[0], parts[len(parts)-1]
	candidates := []string{
		last + "_" + first,
		first + "_" + last,
		first + last,
		last + first,
	}
	for _, part := range parts {
		if utf8.RuneCountInString(part) >= minFragmentLen {
			candidates = append(candidates, part)
		}
	}

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		c = strings.ToUpper(c)
		if seen[c] {
			continue
		}
		seen[c] = true
		p.fragments = append(p.fragments, c)
	}

	return p
}

// Name returns the name the pattern was derived from.
func (p NamePattern) Name() string {
	return p.name
}

// Fragments returns the upper-cased fragments in match order.
func (p NamePattern) Fragments() []string {
	out := make([]string, len(p.fragments))
	copy(out, p.fragments)
	return out
}

// Empty reports whether the pattern has no fragments.
func (p NamePattern) Empty() bool {
	return len(p.fragments) == 0
}

// Matches reports whether imageURL contains any of the pattern's fragments.
func (p NamePattern) Matches(imageURL string) bool {
	_, ok := p.Match(imageURL)
	return ok
}

// Match returns the first fragment found in imageURL.
func (p NamePattern) Match(imageURL string) (string, bool) {
	if imageURL == "" {
		return "", false
	}
	upper := strings.ToUpper(imageURL)
	for _, f := range p.fragments {
		if strings.Contains(upper, f) {
			return f, true
		}
	}
	return "", false
}

// ValidateImage reports whether imageURL plausibly belongs to the athlete
// called name.
func ValidateImage(imageURL, name string) bool {
	if imageURL == "" || name == "" {
		return false
	}
	return NewNamePattern(name).Matches(imageURL)
}
