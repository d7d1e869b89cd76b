package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tier identifiers, highest priority first.
const (
	TierNamedContainer   = "named-container"
	TierNamedField       = "named-field"
	TierFullBodyPattern  = "full-body-pattern"
	TierContainerPattern = "container-pattern"
	TierLayoutKeyword    = "layout-keyword"
	TierHeroImage        = "hero-image"
	TierGlobalKeyword    = "global-keyword"
	TierLastResort       = "last-resort"
)

// DefaultTiers builds the eight image tiers from rules.
func DefaultTiers(rules Rules) ([]Tier, error) {
	compiled, err := rules.compile()
	if err != nil {
		return nil, err
	}

	deny := rules.Denylist

	return []Tier{
		&imageTier{
			name:    TierNamedContainer,
			sources: firstImages(rules.Containers),
			accept: func(u string, t Target) bool {
				// Unvalidated container images are still preferred over lower
				// tiers unless they obviously show somebody else.
				return t.Pattern.Matches(u) || !deny.RejectsRival(u, t.Name)
			},
		},
		&imageTier{
			name:    TierNamedField,
			sources: firstImages(rules.Fields),
			accept:  validated,
		},
		&imageTier{
			name:    TierFullBodyPattern,
			sources: matchingImages(compiled.fullBody),
			accept:  validated,
		},
		&imageTier{
			name:    TierContainerPattern,
			sources: matchingImages(compiled.containers),
			accept:  validated,
		},
		&imageTier{
			name:    TierLayoutKeyword,
			sources: layoutImages(compiled.layoutClass, rules.LayoutKeywords),
			accept:  validated,
		},
		&imageTier{
			name:    TierHeroImage,
			sources: selectorImages(rules.HeroSelectors),
			accept:  validated,
		},
		&imageTier{
			name:    TierGlobalKeyword,
			sources: keywordImages(rules.PositiveKeywords, rules.NegativeKeywords),
			accept:  validated,
		},
		&imageTier{
			name:    TierLastResort,
			sources: firstImages(rules.Containers),
			accept: func(u string, _ Target) bool {
				return !deny.RejectsSuspicious(u)
			},
		},
	}, nil
}

// imageTier pairs a candidate source with an acceptance rule.
type imageTier struct {
	name    string
	sources func(doc *goquery.Document) []string
	accept  func(imageURL string, target Target) bool
}

func (t *imageTier) Name() string {
	return t.name
}

func (t *imageTier) Select(doc *goquery.Document, target Target) (CandidateImage, bool) {
	for i, src := range t.sources(doc) {
		u := Normalize(src, target.Base)
		if u == "" {
			continue
		}
		if t.accept(u, target) {
			return CandidateImage{URL: u, Tier: t.name, Position: i}, true
		}
	}
	return CandidateImage{}, false
}

func validated(imageURL string, target Target) bool {
	return target.Pattern.Matches(imageURL)
}

// firstImages returns, for each selector, the first image inside the first
// element the selector matches.
func firstImages(selectors []string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var srcs []string
		for _, selector := range selectors {
			container := doc.Find(selector).First()
			if container.Length() == 0 {
				continue
			}
			if src := imageSrc(container.Find("img[src]").First()); src != "" {
				srcs = append(srcs, src)
			}
		}
		return srcs
	}
}

// matchingImages returns every image whose src matches a pattern, pattern by
// pattern, each in document order.
func matchingImages(patterns []*regexp.Regexp) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var srcs []string
		images := doc.Find("img[src]")
		for _, re := range patterns {
			images.Each(func(_ int, img *goquery.Selection) {
				if src := imageSrc(img); src != "" && re.MatchString(src) {
					srcs = append(srcs, src)
				}
			})
		}
		return srcs
	}
}

// layoutImages returns the first image of each layout container whose src
// mentions one of keywords.
func layoutImages(class *regexp.Regexp, keywords []string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		if class == nil {
			return nil
		}
		var srcs []string
		doc.Find("div[class]").Each(func(_ int, div *goquery.Selection) {
			if !classMatches(div, class) {
				return
			}
			src := imageSrc(div.Find("img[src]").First())
			if src != "" && containsAny(strings.ToLower(src), keywords) {
				srcs = append(srcs, src)
			}
		})
		return srcs
	}
}

// selectorImages returns every image matched by each selector in turn.
func selectorImages(selectors []string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var srcs []string
		for _, selector := range selectors {
			doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
				if src := imageSrc(img); src != "" {
					srcs = append(srcs, src)
				}
			})
		}
		return srcs
	}
}

// keywordImages returns every image whose src mentions a positive keyword
// and none of the negative ones.
func keywordImages(positive, negative []string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var srcs []string
		doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
			src := imageSrc(img)
			lower := strings.ToLower(src)
			if src != "" && containsAny(lower, positive) && !containsAny(lower, negative) {
				srcs = append(srcs, src)
			}
		})
		return srcs
	}
}

func imageSrc(img *goquery.Selection) string {
	src, _ := img.Attr("src")
	return strings.TrimSpace(src)
}

// classMatches checks the class attribute as a whole and each class in it.
func classMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	class, _ := s.Attr("class")
	if re.MatchString(class) {
		return true
	}
	for _, c := range strings.Fields(class) {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
