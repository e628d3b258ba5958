package batch

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ilm-tools/po-extract/internal/extract"
	"github.com/ilm-tools/po-extract/internal/pdf"
)

func newTestRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	extractor, err := extract.NewExtractor()
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	logger := log.New(io.Discard, "", 0)
	return NewRunner(pdf.NewService(1024*1024), extractor, opts, logger)
}

func TestRunner_MissingInputDir(t *testing.T) {
	runner := newTestRunner(t, Options{})

	result, err := runner.Run(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Table.Len() != 0 {
		t.Errorf("expected no rows, got %d", result.Table.Len())
	}
	if !reflect.DeepEqual(result.Table.Columns, extract.Schema) {
		t.Errorf("expected fixed schema header, got %v", result.Table.Columns)
	}
}

func TestRunner_EmptyInputDir(t *testing.T) {
	runner := newTestRunner(t, Options{})

	result, err := runner.Run(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Table.Len() != 0 || result.Processed != 0 || len(result.Skipped) != 0 {
		t.Errorf("expected empty result, got rows=%d processed=%d skipped=%d",
			result.Table.Len(), result.Processed, len(result.Skipped))
	}
}

func TestRunner_CorruptFilesSkipped(t *testing.T) {
	runner := newTestRunner(t, Options{})
	tempDir := t.TempDir()

	for _, name := range []string{"one.pdf", "two.pdf"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("not a pdf"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	result, err := runner.Run(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Processed != 0 {
		t.Errorf("expected 0 processed, got %d", result.Processed)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skips, got %d", len(result.Skipped))
	}
	for _, skip := range result.Skipped {
		if skip.Reason == "" {
			t.Errorf("skip for %s has no reason", skip.Path)
		}
	}
	// The header must survive even when every document is skipped.
	if !reflect.DeepEqual(result.Table.Columns, extract.Schema) {
		t.Errorf("expected fixed schema header, got %v", result.Table.Columns)
	}
}

func TestRunner_RunFiles_PreservesOrderOfSkips(t *testing.T) {
	runner := newTestRunner(t, Options{})
	tempDir := t.TempDir()

	paths := []string{
		filepath.Join(tempDir, "z.pdf"),
		filepath.Join(tempDir, "a.pdf"),
	}
	for _, p := range paths {
		if err := os.WriteFile(p, []byte("junk"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	result := runner.RunFiles(paths)
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skips, got %d", len(result.Skipped))
	}
	if result.Skipped[0].Path != paths[0] || result.Skipped[1].Path != paths[1] {
		t.Errorf("skips out of input order: %v", result.Skipped)
	}
}
