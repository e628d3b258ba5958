package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewService(t *testing.T) {
	maxFileSize := int64(1024 * 1024) // 1MB
	service := NewService(maxFileSize)

	if service == nil {
		t.Fatal("NewService returned nil")
	}

	if service.maxFileSize != maxFileSize {
		t.Errorf("Expected maxFileSize to be %d, got %d", maxFileSize, service.maxFileSize)
	}

	// Verify all components are initialized
	if service.reader == nil {
		t.Error("reader component should not be nil")
	}
	if service.validator == nil {
		t.Error("validator component should not be nil")
	}
	if service.search == nil {
		t.Error("search component should not be nil")
	}
}

func TestService_GetMaxFileSize(t *testing.T) {
	maxFileSize := int64(2 * 1024 * 1024) // 2MB
	service := NewService(maxFileSize)

	if service.GetMaxFileSize() != maxFileSize {
		t.Errorf("Expected GetMaxFileSize to return %d, got %d", maxFileSize, service.GetMaxFileSize())
	}
}

func TestService_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		maxFileSize   int64
		expectedError bool
		errorMsg      string
	}{
		{
			name:          "valid configuration",
			maxFileSize:   1024 * 1024, // 1MB
			expectedError: false,
		},
		{
			name:          "zero max file size",
			maxFileSize:   0,
			expectedError: true,
			errorMsg:      "maxFileSize must be greater than 0",
		},
		{
			name:          "negative max file size",
			maxFileSize:   -1,
			expectedError: true,
			errorMsg:      "maxFileSize must be greater than 0",
		},
		{
			name:          "max file size too large",
			maxFileSize:   2 * 1024 * 1024 * 1024, // 2GB
			expectedError: true,
			errorMsg:      "maxFileSize cannot exceed 1GB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.maxFileSize)
			err := service.ValidateConfiguration()

			if tt.expectedError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectedError && tt.errorMsg != "" && err.Error() != tt.errorMsg {
				t.Errorf("expected error message '%s' but got '%s'", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestService_ValidateFile_NotAPDF(t *testing.T) {
	service := NewService(1024 * 1024)

	tempDir := t.TempDir()

	// Garbage bytes behind a .pdf extension must be reported as invalid,
	// not as a processing error.
	testFile := filepath.Join(tempDir, "test.pdf")
	if err := os.WriteFile(testFile, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := service.ValidateFile(ValidateFileRequest{Path: testFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Path != testFile {
		t.Errorf("expected path %s but got %s", testFile, result.Path)
	}
	if result.Valid {
		t.Error("expected file to be invalid")
	}
	if result.Message == "" {
		t.Error("expected a validation message for an invalid file")
	}
}

func TestService_IsValidPDF(t *testing.T) {
	service := NewService(1024 * 1024)
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  []byte
		valid    bool
	}{
		{name: "empty file", filename: "empty.pdf", content: nil, valid: false},
		{name: "wrong extension", filename: "doc.txt", content: []byte("text"), valid: false},
		{name: "garbage content", filename: "garbage.pdf", content: []byte("garbage"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.filename)
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatalf("failed to create test file: %v", err)
			}
			if got := service.IsValidPDF(path); got != tt.valid {
				t.Errorf("IsValidPDF(%s) = %v, expected %v", tt.filename, got, tt.valid)
			}
		})
	}

	if service.IsValidPDF(filepath.Join(tempDir, "missing.pdf")) {
		t.Error("missing file should not be valid")
	}
}
