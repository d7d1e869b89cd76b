package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/pkg/extractor"
)

// Paths names the export files. An empty path skips that file.
type Paths struct {
	CSV  string // tabular export
	JSON string // structured export
}

// DefaultPaths returns the default export file names.
func DefaultPaths() Paths {
	return Paths{
		CSV:  "ufc_fighters.csv",
		JSON: "ufc_fighters.json",
	}
}

// Export writes records to every configured path, all from the same slice.
// An empty record set is logged and leaves existing files untouched.
func Export(records []extractor.Record, paths Paths) error {
	if len(records) == 0 {
		logger.Warn("no athlete data to export")
		return nil
	}

	logger.Info("exporting records", "count", len(records))

	var errs []error
	for _, target := range []struct {
		path   string
		format Format
	}{
		{paths.CSV, FormatCSV},
		{paths.JSON, FormatJSON},
	} {
		if target.path == "" {
			continue
		}
		if err := WriteFile(target.path, target.format, records); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Info("exported", "path", target.path, "format", target.format)
	}
	return errors.Join(errs...)
}

// WriteFile writes records to path in format, replacing any existing file.
func WriteFile(path string, format Format, records []extractor.Record) (err error) {
	f, err := os.Create(path) //#nosec G304 -- export path is supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w, err := NewWriter(f, format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
