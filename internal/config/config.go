package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch  = "batch"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultInputDir    = "input_pdf_folder"
	DefaultOutputDir   = "output"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the PO extractor
type Config struct {
	// Mode: "batch" processes a folder and writes a CSV, "server" runs the
	// web UI
	Mode string
	Host string
	Port int

	// Pipeline configuration
	InputDir       string
	OutputDir      string
	MaxFileSize    int64 // Maximum PDF file size in bytes
	ExpandItems    bool  // One row per line item instead of per document
	SortByPONumber bool  // Sort output rows by numeric PO number

	// Application configuration
	Version  string
	AppName  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:           ModeBatch,
		Host:           DefaultHost,
		Port:           DefaultPort,
		InputDir:       DefaultInputDir,
		OutputDir:      DefaultOutputDir,
		MaxFileSize:    DefaultMaxFileSize,
		ExpandItems:    false,
		SortByPONumber: false,
		Version:        "1.0.0",
		AppName:        "po-extract",
		LogLevel:       DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}
	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PO_EXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("output", cfg.OutputDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("expand-items", cfg.ExpandItems)
	viper.SetDefault("sort-po", cfg.SortByPONumber)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' to process a folder, 'server' for the web UI")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("input", cfg.InputDir, "Directory containing PO PDF files (batch mode only)")
	pflag.String("output", cfg.OutputDir, "Directory the CSV output is written to (batch mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Bool("expand-items", cfg.ExpandItems, "Emit one CSV row per line item instead of per document")
	pflag.Bool("sort-po", cfg.SortByPONumber, "Sort output rows by numeric PO number")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("expand-items", pflag.Lookup("expand-items"))
	_ = viper.BindPFlag("sort-po", pflag.Lookup("sort-po"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPO PDF Extractor - Extract purchase order fields from PDFs into CSV\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                        "+
			"# batch mode over ./input_pdf_folder (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/path/to/pdfs --output=/tmp     # batch with custom folders\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --expand-items --sort-po                # one row per line item\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081               # web UI\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_INPUT        Input PDF directory\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_OUTPUT       CSV output directory\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  PO_EXTRACT_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputDir = viper.GetString("input")
	cfg.OutputDir = viper.GetString("output")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.ExpandItems = viper.GetBool("expand-items")
	cfg.SortByPONumber = viper.GetBool("sort-po")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeServer {
		return errors.New("mode must be either 'batch' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Mode == ModeBatch {
		if c.InputDir == "" {
			return errors.New("input directory cannot be empty")
		}
		if c.OutputDir == "" {
			return errors.New("output directory cannot be empty")
		}
		// A missing input directory yields an empty run, but the output
		// directory must be creatable up front.
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, InputDir: %s, OutputDir: %s, "+
		"LogLevel: %s, MaxFileSize: %d, ExpandItems: %t, SortByPONumber: %t}",
		c.Mode, c.Host, c.Port, c.InputDir, c.OutputDir, c.LogLevel, c.MaxFileSize,
		c.ExpandItems, c.SortByPONumber)
}

// IsServerMode returns true if the web UI server should run
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsBatchMode returns true if the CLI batch pipeline should run
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}
