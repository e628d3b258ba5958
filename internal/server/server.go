// Package server exposes the extraction pipeline over HTTP: a small JSON API
// plus a single-page UI for uploading PDFs, shaping the result table and
// downloading it as CSV.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilm-tools/po-extract/internal/config"
	"github.com/ilm-tools/po-extract/internal/extract"
	"github.com/ilm-tools/po-extract/internal/pdf"
)

// Server wires the batch runner and result store behind a gin engine.
type Server struct {
	cfg       *config.Config
	store     *Store
	pdfs      *pdf.Service
	extractor *extract.Extractor
	logger    *log.Logger
	engine    *gin.Engine
}

// NewServer creates a server around the given PDF service and extractor.
// A nil logger falls back to the standard logger.
func NewServer(cfg *config.Config, pdfs *pdf.Service, extractor *extract.Extractor, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		store:     NewStore(),
		pdfs:      pdfs,
		extractor: extractor,
		logger:    logger,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Engine returns the underlying gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/tables/:id", s.handleGetTable)
	api.POST("/tables/:id/download", s.handleDownload)
	api.DELETE("/tables/:id", s.handleDelete)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on http://%s", s.cfg.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Println("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    s.cfg.AppName,
		"version": s.cfg.Version,
		"tables":  s.store.Len(),
	})
}
