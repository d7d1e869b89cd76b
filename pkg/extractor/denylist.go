package extractor

import "strings"

// Denylist holds tokens of well-known athletes whose images show up on other
// athletes' pages (shared hero defaults, cached listing cards).
//
// It is an imprecise safety net for the weak-fallback tiers, not a
// correctness check: it only knows the handful of names listed here and
// will happily accept any other athlete's image.
type Denylist struct {
	// Rivals are rejected by the named-container tier unless the token is
	// part of the subject's own name.
	Rivals []string `json:"rivals" yaml:"rivals"`

	// Suspicious are rejected unconditionally by the last-resort tier.
	Suspicious []string `json:"suspicious" yaml:"suspicious"`
}

// DefaultDenylist returns the built-in denylist.
func DefaultDenylist() Denylist {
	return Denylist{
		Rivals:     []string{"BORG", "SILVA", "JONES"},
		Suspicious: []string{"BORG_RAY", "SILVA_", "JONES_", "MCGREGOR_", "DIAZ_"},
	}
}

// RejectsRival reports whether imageURL carries a rival token that does not
// belong to name.
func (d Denylist) RejectsRival(imageURL, name string) bool {
	upperURL := strings.ToUpper(imageURL)
	upperName := strings.ToUpper(name)
	for _, token := range d.Rivals {
		token = strings.ToUpper(token)
		if token == "" || strings.Contains(upperName, token) {
			continue
		}
		if strings.Contains(upperURL, token) {
			return true
		}
	}
	return false
}

// RejectsSuspicious reports whether imageURL carries any suspicious token.
func (d Denylist) RejectsSuspicious(imageURL string) bool {
	upperURL := strings.ToUpper(imageURL)
	for _, token := range d.Suspicious {
		token = strings.ToUpper(token)
		if token != "" && strings.Contains(upperURL, token) {
			return true
		}
	}
	return false
}
