package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// JSONWriter buffers records and writes them as one JSON array.
type JSONWriter struct {
	w            *bufio.Writer
	pretty       bool
	indent       string
	unwrapSingle bool
	written      bool
	records      []extractor.Record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:       bufio.NewWriter(w),
		pretty:  pretty,
		indent:  indent,
		records: make([]extractor.Record, 0),
	}
}

func (w *JSONWriter) Write(rec extractor.Record) error {
	w.records = append(w.records, rec)
	return nil
}

func (w *JSONWriter) WriteAll(recs []extractor.Record) error {
	w.records = append(w.records, recs...)
	return nil
}

// Flush writes the buffered records and clears the buffer. Once a
// document has been written, flushing an empty buffer writes nothing.
func (w *JSONWriter) Flush() error {
	if w.written && len(w.records) == 0 {
		return w.w.Flush()
	}

	var v any = w.records
	if w.unwrapSingle && len(w.records) == 1 {
		v = w.records[0]
	}

	var data []byte
	var err error
	if w.pretty {
		data, err = json.MarshalIndent(v, "", w.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(data); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	w.written = true
	w.records = w.records[:0]
	return w.w.Flush()
}

func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes one JSON record per line as records arrive.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{w: bw, enc: json.NewEncoder(bw)}
}

func (w *JSONLWriter) Write(rec extractor.Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLWriter) WriteAll(recs []extractor.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

func (w *JSONLWriter) Close() error {
	return w.Flush()
}
