// Package extractor pulls athlete records out of profile pages.
//
// Extraction is a pure function of the parsed document: the name comes from
// an ordered selector chain with a page-title fallback, and the image comes
// from an ordered cascade of tiers that cross-check candidate URLs against
// the extracted name.
package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
)

// ErrNoName is returned when a document yields no athlete name.
// Such documents produce no record.
var ErrNoName = errors.New("no athlete name found")

var validate = validator.New()

// Record is a single extracted athlete.
type Record struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	ImageURL string `json:"image_url" yaml:"image_url" validate:"omitempty,url"`
}

// Validate checks that the record has a name and a well-formed image URL.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}

// HasImage reports whether an image was selected.
func (r Record) HasImage() bool {
	return r.ImageURL != ""
}

// Extractor extracts records from profile documents.
type Extractor struct {
	base    string
	rules   Rules
	cascade *Cascade
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the default rule tables.
func WithRules(rules Rules) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithTiers replaces the image cascade tiers.
func WithTiers(tiers ...Tier) Option {
	return func(e *Extractor) {
		e.cascade = NewCascade(tiers...)
	}
}

// New creates an Extractor resolving relative URLs against base.
func New(base string, opts ...Option) (*Extractor, error) {
	e := &Extractor{
		base:  base,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cascade == nil {
		tiers, err := DefaultTiers(e.rules)
		if err != nil {
			return nil, fmt.Errorf("failed to build image tiers: %w", err)
		}
		e.cascade = NewCascade(tiers...)
	}

	return e, nil
}

// Extract returns the record for doc, or ErrNoName.
// A missing image is not an error: the record carries an empty ImageURL.
func (e *Extractor) Extract(doc *goquery.Document) (*Record, error) {
	name, ok := e.ExtractName(doc)
	if !ok {
		return nil, ErrNoName
	}
	name = strings.TrimSpace(name)

	imageURL, _ := e.ExtractImage(doc, name)
	return &Record{Name: name, ImageURL: imageURL}, nil
}

// ExtractHTML parses html and extracts a record from it.
func (e *Extractor) ExtractHTML(html string) (*Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return e.Extract(doc)
}

// ExtractImage runs the image cascade for the athlete called name.
func (e *Extractor) ExtractImage(doc *goquery.Document, name string) (string, bool) {
	candidate, ok := e.cascade.Select(doc, NewTarget(name, e.base))
	if !ok {
		return "", false
	}
	return candidate.URL, true
}

// Cascade returns the image cascade in use.
func (e *Extractor) Cascade() *Cascade {
	return e.cascade
}
