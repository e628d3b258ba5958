package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ilm-tools/po-extract/internal/batch"
	"github.com/ilm-tools/po-extract/internal/config"
	"github.com/ilm-tools/po-extract/internal/csvout"
	"github.com/ilm-tools/po-extract/internal/extract"
	"github.com/ilm-tools/po-extract/internal/pdf"
	"github.com/ilm-tools/po-extract/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsBatchMode() {
		// Batch output goes to stdout, diagnostics to stderr
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
		if cfg.IsDebug() {
			log.SetFlags(log.LstdFlags)
		}
	} else {
		// In server mode, use normal stdout logging with more detail
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runBatch processes the input directory and writes one CSV to the output
// directory.
func runBatch(cfg *config.Config) error {
	extractor, err := extract.NewExtractor()
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	runner := batch.NewRunner(pdf.NewService(cfg.MaxFileSize), extractor, batch.Options{
		ExpandItems:    cfg.ExpandItems,
		SortByPONumber: cfg.SortByPONumber,
	}, log.Default())

	result, err := runner.Run(cfg.InputDir)
	if err != nil {
		return err
	}

	for _, skip := range result.Skipped {
		log.Printf("skipped %s: %s", skip.Path, skip.Reason)
	}

	if result.Processed == 0 && len(result.Skipped) == 0 {
		log.Printf("no PDF files found in %s", cfg.InputDir)
		return nil
	}

	path, err := csvout.WriteFile(cfg.OutputDir, result.Table)
	if err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Processed %d of %d documents, %d rows written to %s\n",
		result.Processed, result.Processed+len(result.Skipped), result.Table.Len(), path)
	return nil
}

// runServerMode handles server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, srv *server.Server) {
	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		// Wait for server to shutdown
		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if cfg.IsBatchMode() {
		if err := runBatch(cfg); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}
		return
	}

	extractor, err := extract.NewExtractor()
	if err != nil {
		log.Fatalf("Failed to create extractor: %v", err)
	}
	srv := server.NewServer(cfg, pdf.NewService(cfg.MaxFileSize), extractor, log.Default())

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runServerMode(ctx, cancel, srv)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PO PDF Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
