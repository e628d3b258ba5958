package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader handles PDF text extraction
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts text content from a PDF file. Text is assembled row by
// row in visual order so that label/value pairs land on predictable lines
// for the field-recognition rules. A document with no extractable text is
// not an error; it yields empty content with a content type of
// "scanned_images" or "no_content".
func (r *Reader) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content := r.extractTextContent(pdfReader)
	contentType := r.analyzeContentType(content, pdfReader)
	hasImages, imageCount := r.detectImages(pdfReader)

	return &ReadFileResult{
		Content:     content,
		Path:        req.Path,
		Pages:       pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: contentType,
		HasImages:   hasImages,
		ImageCount:  imageCount,
	}, nil
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// extractTextContent extracts row-ordered text from all pages. Pages that
// fail to parse are skipped so one bad page does not lose the document.
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) string {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		pageText := r.extractPageText(pdfReader, pageNum)
		if pageText == "" {
			continue
		}

		if totalLength+len(pageText) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(pageText[:remaining])
			}
			break
		}

		builder.WriteString(pageText)
		totalLength += len(pageText)
	}

	return builder.String()
}

// extractPageText returns the text of one page, one visual row per line,
// ordered top to bottom.
func (r *Reader) extractPageText(pdfReader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		// ledongthuc panics on some malformed content streams
		if recover() != nil {
			text = ""
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var builder strings.Builder
	for _, row := range rows {
		var words []string
		for _, word := range row.Content {
			if word.S != "" {
				words = append(words, word.S)
			}
		}
		if len(words) == 0 {
			continue
		}
		builder.WriteString(strings.Join(words, " "))
		builder.WriteString("\n")
	}
	return builder.String()
}

// analyzeContentType determines the type of content in the PDF
func (r *Reader) analyzeContentType(textContent string, pdfReader *pdf.Reader) string {
	// Minimum text length to consider content meaningful
	const minMeaningfulTextLength = 50

	cleanText := strings.TrimSpace(textContent)
	hasImages, _ := r.detectImages(pdfReader)

	if len(cleanText) < minMeaningfulTextLength {
		if hasImages {
			return ContentTypeScannedImages
		}
		return ContentTypeNoContent
	}

	if hasImages {
		return ContentTypeMixed
	}

	return ContentTypeText
}

// detectImages scans the PDF for image objects
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	imageCount := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts images on a specific page
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) (count int) {
	defer func() {
		// Recover from any panics during image detection
		if recover() != nil {
			count = 0
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		imageCount++
	}

	return imageCount
}
