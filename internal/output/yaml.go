package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// YAMLWriter buffers records and writes them as one YAML sequence.
type YAMLWriter struct {
	w            *bufio.Writer
	unwrapSingle bool
	written      bool
	records      []extractor.Record
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:       bufio.NewWriter(w),
		records: make([]extractor.Record, 0),
	}
}

func (w *YAMLWriter) Write(rec extractor.Record) error {
	w.records = append(w.records, rec)
	return nil
}

func (w *YAMLWriter) WriteAll(recs []extractor.Record) error {
	w.records = append(w.records, recs...)
	return nil
}

// Flush writes the buffered records and clears the buffer. Once a
// document has been written, flushing an empty buffer writes nothing.
func (w *YAMLWriter) Flush() error {
	if w.written && len(w.records) == 0 {
		return w.w.Flush()
	}

	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var v any = w.records
	if w.unwrapSingle && len(w.records) == 1 {
		v = w.records[0]
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.written = true
	w.records = w.records[:0]
	return w.w.Flush()
}

func (w *YAMLWriter) Close() error {
	return w.Flush()
}
