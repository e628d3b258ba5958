package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ilm-tools/po-extract/internal/batch"
	"github.com/ilm-tools/po-extract/internal/csvout"
	"github.com/ilm-tools/po-extract/internal/table"
)

// viewRequest describes a client-side shaping of a stored table: which
// columns to show, how to sort, what to search for and which rows to keep.
type viewRequest struct {
	Columns []string `json:"columns"`
	Sort    string   `json:"sort"`
	Order   string   `json:"order"`
	Query   string   `json:"query"`
	Rows    []int    `json:"rows"`
}

// handleUpload accepts multipart PDF and ZIP files, runs them through the
// extraction pipeline and stores the resulting table.
func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	workDir, err := os.MkdirTemp("", "po-extract-upload-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create working directory"})
		return
	}
	defer os.RemoveAll(workDir)

	paths, err := s.collectUploads(files, workDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(paths) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploads contained no PDF files"})
		return
	}

	runner := batch.NewRunner(s.pdfs, s.extractor, batch.Options{
		ExpandItems:    s.cfg.ExpandItems,
		SortByPONumber: s.cfg.SortByPONumber,
	}, s.logger)
	result := runner.RunFiles(paths)

	id := s.store.Put(result.Table, result.Skipped)
	s.logger.Printf("upload %s: %d processed, %d skipped, %d rows",
		id, result.Processed, len(result.Skipped), result.Table.Len())

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"columns":   result.Table.Columns,
		"rows":      result.Table.Rows,
		"processed": result.Processed,
		"skipped":   result.Skipped,
	})
}

// collectUploads writes uploaded files into workDir and returns the PDF
// paths to process, unpacking ZIP archives along the way.
func (s *Server) collectUploads(files []*multipart.FileHeader, workDir string) ([]string, error) {
	var paths []string
	for i, fh := range files {
		name := filepath.Base(fh.Filename)
		dest := filepath.Join(workDir, fmt.Sprintf("%d_%s", i, name))

		if err := saveUpload(fh, dest); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			paths = append(paths, dest)
		case ".zip":
			unpackDir := filepath.Join(workDir, fmt.Sprintf("%d_unpacked", i))
			extracted, err := batch.ExtractArchive(dest, unpackDir)
			if err != nil {
				return nil, fmt.Errorf("failed to unpack %s: %w", name, err)
			}
			paths = append(paths, extracted...)
		default:
			return nil, fmt.Errorf("unsupported file type: %s", name)
		}
	}
	return paths, nil
}

func saveUpload(fh *multipart.FileHeader, dest string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return err
	}
	return dst.Sync()
}

// handleGetTable returns a stored table shaped by the view query parameters:
// cols (comma separated), sort, order (asc|desc) and q.
func (s *Server) handleGetTable(c *gin.Context) {
	entry, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	view := viewRequest{
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
		Query: c.Query("q"),
	}
	if cols := c.Query("cols"); cols != "" {
		view.Columns = strings.Split(cols, ",")
	}

	t := applyView(entry.Table, view)
	c.JSON(http.StatusOK, gin.H{
		"columns": t.Columns,
		"rows":    t.Rows,
		"total":   entry.Table.Len(),
		"skipped": entry.Skipped,
	})
}

// handleDownload streams a shaped table as a CSV attachment. The view,
// including an optional row selection, comes in the JSON body.
func (s *Server) handleDownload(c *gin.Context) {
	entry, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var view viewRequest
	if err := c.ShouldBindJSON(&view); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := applyView(entry.Table, view)
	if len(view.Rows) > 0 {
		t = t.SelectRows(view.Rows)
	}

	var buf bytes.Buffer
	if err := csvout.Write(&buf, t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode CSV"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="Extracted_Selected.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) handleDelete(c *gin.Context) {
	s.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// applyView shapes a stored table without mutating it: filter, then sort,
// then project onto the requested columns. Row indices in the view refer to
// the shaped table, so SelectRows is left to the caller.
func applyView(t *table.Table, view viewRequest) *table.Table {
	out := t
	if view.Query != "" {
		out = out.Filter(view.Query)
	}
	if view.Sort != "" {
		out = out.SortBy(view.Sort, view.Order == "desc")
	}
	if len(view.Columns) > 0 {
		out = out.SelectColumns(view.Columns)
	}
	if out == t {
		out = t.Clone()
	}
	return out
}
