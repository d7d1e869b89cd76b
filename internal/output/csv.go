package output

import (
	"encoding/csv"
	"io"

	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// csvHeader is the fixed column order of the tabular export.
var csvHeader = []string{"name", "image_url"}

// CSVWriter writes records as "name,image_url" rows. The header is written
// exactly once, even when no records are written.
type CSVWriter struct {
	w             *csv.Writer
	headerWritten bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (w *CSVWriter) Write(rec extractor.Record) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.w.Write([]string{rec.Name, rec.ImageURL})
}

func (w *CSVWriter) WriteAll(recs []extractor.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func (w *CSVWriter) Close() error {
	return w.Flush()
}

func (w *CSVWriter) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.w.Write(csvHeader)
}
