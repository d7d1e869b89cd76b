package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ExtractName returns the athlete name from a profile document.
//
// Selectors are tried in order; the first one whose text is longer than one
// character wins. When none match, the left-hand side of the page title
// ("Jon Jones | UFC") is used.
func (e *Extractor) ExtractName(doc *goquery.Document) (string, bool) {
	for _, selector := range e.rules.NameSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		name := cleanText(sel.Text())
		if utf8.RuneCountInString(name) > 1 {
			return name, true
		}
	}

	return nameFromTitle(doc, e.rules.TitleSeparator)
}

func nameFromTitle(doc *goquery.Document, separator string) (string, bool) {
	if separator == "" {
		return "", false
	}
	title := doc.Find("title").First().Text()
	head, _, found := strings.Cut(title, separator)
	if !found {
		return "", false
	}
	name := cleanText(head)
	return name, name != ""
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
