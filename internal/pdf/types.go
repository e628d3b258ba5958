package pdf

// FileInfo represents information about a discovered PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Content type values reported by the reader
const (
	ContentTypeText          = "text"
	ContentTypeScannedImages = "scanned_images"
	ContentTypeMixed         = "mixed"
	ContentTypeNoContent     = "no_content"
)

// ReadFileRequest represents a request to read a PDF file
type ReadFileRequest struct {
	Path string `json:"path"`
}

// ReadFileResult represents the result of a PDF read operation
type ReadFileResult struct {
	Content     string `json:"content"`
	Path        string `json:"path"`
	Pages       int    `json:"pages"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"` // "text", "scanned_images", "mixed", "no_content"
	HasImages   bool   `json:"has_images"`
	ImageCount  int    `json:"image_count"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult represents the result of a PDF validation operation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}
