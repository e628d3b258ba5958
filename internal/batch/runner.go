// Package batch turns a collection of PDF sources into a single extraction
// table, one document at a time. Failures are local: a file that cannot be
// opened or parsed is recorded as a skip and the batch continues.
package batch

import (
	"fmt"
	"log"
	"os"

	"github.com/ilm-tools/po-extract/internal/extract"
	"github.com/ilm-tools/po-extract/internal/pdf"
	"github.com/ilm-tools/po-extract/internal/table"
)

// Options controls how the runner maps documents to rows.
type Options struct {
	// ExpandItems emits one row per detected line item instead of one row
	// per document.
	ExpandItems bool
	// SortByPONumber orders the final rows by the numeric part of the PO
	// number instead of discovery order.
	SortByPONumber bool
}

// Skip records a document that was left out of the batch and why.
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the outcome of one batch run.
type Result struct {
	Table     *table.Table
	Processed int
	Skipped   []Skip
}

// Runner drives the per-document pipeline: validate, read, extract.
type Runner struct {
	pdfs      *pdf.Service
	extractor *extract.Extractor
	opts      Options
	logger    *log.Logger
}

// NewRunner creates a batch runner over the given PDF service and extractor.
// A nil logger falls back to the standard logger.
func NewRunner(pdfs *pdf.Service, extractor *extract.Extractor, opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		pdfs:      pdfs,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// Run processes every PDF under inputDir. A missing or empty input
// directory is not an error; it produces a table with the fixed header and
// no rows.
func (r *Runner) Run(inputDir string) (*Result, error) {
	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		r.logger.Printf("input directory %s does not exist, nothing to do", inputDir)
		return r.emptyResult(), nil
	}

	files, err := r.pdfs.FindPDFsInDirectory(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return r.RunFiles(paths), nil
}

// RunFiles processes the given PDF files in order.
func (r *Runner) RunFiles(paths []string) *Result {
	result := r.emptyResult()

	for _, path := range paths {
		records, err := r.processFile(path)
		if err != nil {
			r.logger.Printf("skipping %s: %v", path, err)
			result.Skipped = append(result.Skipped, Skip{Path: path, Reason: err.Error()})
			continue
		}
		for _, rec := range records {
			result.Table.Append(rec.Row(extract.Schema))
		}
		result.Processed++
	}

	if r.opts.SortByPONumber {
		result.Table = result.Table.SortByNumber(extract.FieldPONumber)
	}
	return result
}

// processFile runs one document through validate, read and extract.
func (r *Runner) processFile(path string) ([]extract.Record, error) {
	validation, err := r.pdfs.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !validation.Valid {
		return nil, fmt.Errorf("invalid PDF: %s", validation.Message)
	}

	read, err := r.pdfs.ReadFile(pdf.ReadFileRequest{Path: path})
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	if read.ContentType == pdf.ContentTypeScannedImages {
		r.logger.Printf("%s has no extractable text (scanned images), emitting empty record", path)
	}

	if r.opts.ExpandItems {
		return r.extractor.ExtractAll(read.Content), nil
	}
	return []extract.Record{r.extractor.Extract(read.Content)}, nil
}

func (r *Runner) emptyResult() *Result {
	return &Result{
		Table:   table.New(extract.Schema),
		Skipped: []Skip{},
	}
}
