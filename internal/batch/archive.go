package batch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractArchive unpacks the PDF entries of a ZIP archive into destDir and
// returns the extracted paths in archive order. Non-PDF entries, macOS
// archive junk ("__MACOSX" trees, "._*" AppleDouble files) and entries whose
// names escape destDir are skipped.
func ExtractArchive(archivePath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create extraction directory: %w", err)
	}

	var extracted []string
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !isPDFEntry(entry.Name) {
			continue
		}

		path, err := safeEntryPath(destDir, entry.Name)
		if err != nil {
			continue
		}

		if err := writeEntry(entry, path); err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		extracted = append(extracted, path)
	}

	return extracted, nil
}

// isPDFEntry reports whether an archive entry is a real PDF, not junk.
func isPDFEntry(name string) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == "__MACOSX" || strings.HasPrefix(part, "._") {
			return false
		}
	}
	return true
}

// safeEntryPath resolves an entry name under destDir, rejecting traversal.
func safeEntryPath(destDir, name string) (string, error) {
	path := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(filepath.Separator)) {
		return "", fmt.Errorf("entry name escapes destination: %s", name)
	}
	return path, nil
}

func writeEntry(entry *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Sync()
}
