package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/athletescrape/internal/logger"
)

// Target identifies the athlete an image is being selected for.
type Target struct {
	Name    string
	Pattern NamePattern
	Base    string // site origin used to resolve relative image references
}

// NewTarget builds a Target for name, resolving images against base.
func NewTarget(name, base string) Target {
	return Target{
		Name:    name,
		Pattern: NewNamePattern(name),
		Base:    base,
	}
}

// CandidateImage is an absolute image URL found on a document, tagged with
// the tier that produced it and its position among that tier's candidates.
type CandidateImage struct {
	URL      string
	Tier     string
	Position int
}

// Tier is one ranked stage of the image cascade.
type Tier interface {
	// Name returns the tier identifier.
	Name() string

	// Select returns the first candidate on doc the tier accepts for target.
	Select(doc *goquery.Document, target Target) (CandidateImage, bool)
}

// Cascade tries each tier in order until one yields a candidate.
// Lower tiers are never evaluated once a higher tier has matched.
type Cascade struct {
	tiers []Tier
}

// NewCascade creates a cascade from the given tiers, highest priority first.
func NewCascade(tiers ...Tier) *Cascade {
	return &Cascade{tiers: tiers}
}

// Select runs the cascade against doc.
func (c *Cascade) Select(doc *goquery.Document, target Target) (CandidateImage, bool) {
	for _, tier := range c.tiers {
		candidate, ok := tier.Select(doc, target)
		if ok {
			logger.Debug("image tier matched",
				"tier", tier.Name(),
				"position", candidate.Position,
				"name", target.Name,
				"url", candidate.URL)
			return candidate, true
		}
		logger.Debug("image tier yielded nothing", "tier", tier.Name(), "name", target.Name)
	}
	return CandidateImage{}, false
}

// Name returns the cascade name.
func (c *Cascade) Name() string {
	return "cascade(" + strings.Join(c.TierNames(), "->") + ")"
}

// TierNames returns the tier identifiers in evaluation order.
func (c *Cascade) TierNames() []string {
	names := make([]string, 0, len(c.tiers))
	for _, t := range c.tiers {
		names = append(names, t.Name())
	}
	return names
}
