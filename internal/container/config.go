// Package container provides dependency injection and lifecycle management
// for the invoice extraction service.
package container

import (
	"fmt"
	"time"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Upload limits
	Upload UploadConfig

	// Batch pipeline configuration
	Processing ProcessingConfig

	// Text extractor configuration
	Extractor ExtractorConfig

	// Per-client rate limits
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind to
	Host string

	// Port to listen on
	Port int

	// ReadTimeout for HTTP server
	ReadTimeout time.Duration

	// WriteTimeout for HTTP server
	WriteTimeout time.Duration

	// AllowedOrigins for CORS; "*" allows any
	AllowedOrigins []string

	// StaticDir holds a built frontend; empty disables static serving
	StaticDir string
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	// MaxFileSize is the per-file limit in bytes
	MaxFileSize int64

	// MaxFiles is the per-request file count limit
	MaxFiles int

	// StrictValidation runs pdfcpu structure validation before extraction
	StrictValidation bool
}

// ProcessingConfig holds batch pipeline settings.
type ProcessingConfig struct {
	// Workers bounds concurrent per-file pipelines
	Workers int

	// ReconciliationTolerance is the allowed total difference in rupees
	ReconciliationTolerance float64
}

// ExtractorConfig holds text extraction settings.
type ExtractorConfig struct {
	// Engine is "fitz" (MuPDF) or "pdf" (pure Go)
	Engine string

	// Fallback retries with the other engine when the first yields no text
	Fallback bool
}

// RateLimitConfig holds per-client limits in requests per minute.
type RateLimitConfig struct {
	Enabled       bool
	ProcessPerMin int
	ExportPerMin  int
	DebugPerMin   int
	Burst         int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   120 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Upload: UploadConfig{
			MaxFileSize: 50 * 1024 * 1024,
			MaxFiles:    100,
		},
		Processing: ProcessingConfig{
			Workers:                 4,
			ReconciliationTolerance: 0.01,
		},
		Extractor: ExtractorConfig{
			Engine:   "fitz",
			Fallback: true,
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			ProcessPerMin: 30,
			ExportPerMin:  20,
			DebugPerMin:   10,
			Burst:         5,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload.max_file_size must be positive")
	}
	if c.Processing.ReconciliationTolerance < 0 {
		return fmt.Errorf("processing.reconciliation_tolerance must not be negative")
	}
	if c.Extractor.Engine == "" {
		return fmt.Errorf("extractor.engine is required")
	}

	return nil
}
