// Package output serializes extracted athlete records.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatJSONL, FormatYAML}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "yml" {
		ext = string(FormatYAML)
	}
	return ParseFormat(ext)
}

// Writer handles record serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec extractor.Record) error

	// WriteAll outputs multiple records.
	WriteAll(recs []extractor.Record) error

	// Flush ensures all data is written.
	Flush() error

	// Close flushes the writer. It does not close the underlying io.Writer.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty       bool
	indent       string
	unwrapSingle bool
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithUnwrapSingle makes JSON and YAML writers emit a lone record as an
// object instead of a one-element list.
func WithUnwrapSingle(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.unwrapSingle = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSON:
		jw := NewJSONWriter(w, cfg.pretty, cfg.indent)
		jw.unwrapSingle = cfg.unwrapSingle
		return jw, nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		yw := NewYAMLWriter(w)
		yw.unwrapSingle = cfg.unwrapSingle
		return yw, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
