package roster

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// Stats summarizes a scrape.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	WithImage    int `json:"with_image" yaml:"with_image"`
	WithoutImage int `json:"without_image" yaml:"without_image"`
	NoName       int `json:"no_name" yaml:"no_name"` // profiles skipped for lack of a name
	Failed       int `json:"failed" yaml:"failed"`   // profiles that could not be fetched or parsed
}

// NewStats counts records with and without an image.
func NewStats(records []extractor.Record) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		if r.HasImage() {
			s.WithImage++
		}
	}
	s.WithoutImage = s.Total - s.WithImage
	return s
}

// SuccessRate returns the percentage of records with an image.
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.WithImage) / float64(s.Total) * 100
}

// WriteSummary prints a human-readable summary.
func (s Stats) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Total athletes: %s\nWith images:    %s\nWithout images: %s\n",
		humanize.Comma(int64(s.Total)),
		humanize.Comma(int64(s.WithImage)),
		humanize.Comma(int64(s.WithoutImage)))
	if err != nil {
		return err
	}
	if s.Total > 0 {
		if _, err := fmt.Fprintf(w, "Image success rate: %.1f%%\n", s.SuccessRate()); err != nil {
			return err
		}
	}
	if s.NoName > 0 || s.Failed > 0 {
		if _, err := fmt.Fprintf(w, "Skipped: %d without name, %d failed\n", s.NoName, s.Failed); err != nil {
			return err
		}
	}
	return nil
}
