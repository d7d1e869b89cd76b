package roster

import (
	"errors"
	"path"
	"sync"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// Collection accumulates records in arrival order. It is safe for
// concurrent use, and Snapshot may be taken at any time, e.g. to export
// partial results after an interrupt.
type Collection struct {
	mu      sync.Mutex
	records []extractor.Record
	noName  int
	failed  int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a record.
func (c *Collection) Add(rec extractor.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// AddResult records the outcome of one profile.
func (c *Collection) AddResult(res Result) {
	switch {
	case res.Error == nil && res.Record != nil:
		c.Add(*res.Record)
		if res.Record.HasImage() {
			logger.Info("athlete extracted", "name", res.Record.Name, "image", true)
		} else {
			logger.Warn("no profile image found", "name", res.Record.Name, "url", res.URL)
		}
	case errors.Is(res.Error, extractor.ErrNoName):
		c.mu.Lock()
		c.noName++
		c.mu.Unlock()
		logger.Warn("could not find athlete name", "url", res.URL)
	default:
		c.mu.Lock()
		c.failed++
		c.mu.Unlock()
		logger.Error("profile failed", "url", res.URL, "error", res.Error)
	}
}

// Consume adds every result from results until the channel closes.
// total is the number of profiles scheduled, used for progress logging.
func (c *Collection) Consume(results <-chan Result, total int) {
	done := 0
	for res := range results {
		done++
		logger.Debug("processing athlete", "n", done, "total", total, "slug", path.Base(res.URL))
		c.AddResult(res)
		if done%10 == 0 {
			logger.Info("progress", "processed", done, "total", total)
		}
	}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Snapshot returns a copy of the records collected so far.
func (c *Collection) Snapshot() []extractor.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]extractor.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Stats summarizes the collection.
func (c *Collection) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := NewStats(c.records)
	s.NoName = c.noName
	s.Failed = c.failed
	return s
}
