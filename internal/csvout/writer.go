// Package csvout serializes an extraction table to CSV: header row first,
// one line per record, RFC 4180 quoting. Output is deterministic, the same
// table always produces byte-identical CSV.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ilm-tools/po-extract/internal/table"
)

// DefaultFileName is the base name for written CSV files.
const DefaultFileName = "Extracted"

// now is swapped out in tests to pin timestamped file names.
var now = time.Now

// Write serializes the table to w.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// WriteFile writes the table into dir under a timestamped name and returns
// the full path. The directory is created if it does not exist.
func WriteFile(dir string, t *table.Table) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.csv", DefaultFileName, now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create output file %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, t); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync output file %s: %w", path, err)
	}
	return path, nil
}
