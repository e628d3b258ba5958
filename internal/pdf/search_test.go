package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestSearch_FindPDFsInDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := t.TempDir()

	writeTestFile(t, filepath.Join(tempDir, "b.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "a.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "nested", "c.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "notes.txt"), 64)

	files, err := search.FindPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 PDFs, got %d", len(files))
	}

	// Lexical walk order: a.pdf, b.pdf, then nested/c.pdf
	expected := []string{"a.pdf", "b.pdf", "c.pdf"}
	for i, want := range expected {
		if files[i].Name != want {
			t.Errorf("file %d: expected %s, got %s", i, want, files[i].Name)
		}
	}
}

func TestSearch_SkipsArchiveJunk(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := t.TempDir()

	writeTestFile(t, filepath.Join(tempDir, "real.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "._real.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "__MACOSX", "ghost.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, ".hidden", "secret.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "empty.pdf"), 0)

	files, err := search.FindPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 PDF, got %d", len(files))
	}
	if files[0].Name != "real.pdf" {
		t.Errorf("expected real.pdf, got %s", files[0].Name)
	}
}

func TestSearch_MissingDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)

	if _, err := search.FindPDFsInDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := search.FindPDFsInDirectory(""); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestSearch_CountPDFsInDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := t.TempDir()

	writeTestFile(t, filepath.Join(tempDir, "one.pdf"), 64)
	writeTestFile(t, filepath.Join(tempDir, "two.pdf"), 64)

	count, err := search.CountPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}

func TestSearch_OversizedFilesSkipped(t *testing.T) {
	search := NewSearch(32)
	tempDir := t.TempDir()

	writeTestFile(t, filepath.Join(tempDir, "small.pdf"), 16)
	writeTestFile(t, filepath.Join(tempDir, "big.pdf"), 64)

	files, err := search.FindPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "small.pdf" {
		t.Errorf("expected only small.pdf, got %v", files)
	}
}
