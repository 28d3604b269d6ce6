// Package http provides the HTTP adapter for the invoice extraction service.
// It translates multipart uploads into batch service calls and renders the
// results as JSON or spreadsheet downloads.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/tally-invoice-extractor/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RateLimitConfig holds per-client request limits, in requests per minute
type RateLimitConfig struct {
	Enabled       bool
	ProcessPerMin int
	ExportPerMin  int
	DebugPerMin   int
	Burst         int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	StaticDir      string
	MaxFileSize    int64
	MaxFiles       int
	RateLimit      RateLimitConfig
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:           "0.0.0.0",
		Port:           8000,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   120 * time.Second,
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		MaxFileSize:    50 * 1024 * 1024,
		MaxFiles:       100,
		RateLimit: RateLimitConfig{
			Enabled:       true,
			ProcessPerMin: 30,
			ExportPerMin:  20,
			DebugPerMin:   10,
			Burst:         5,
		},
	}
}

// Server is the HTTP server adapter
type Server struct {
	config       ServerConfig
	httpServer   *http.Server
	router       *gin.Engine
	batchService service.BatchService
	logger       Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, batchService service.BatchService, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:       config,
		router:       router,
		batchService: batchService,
		logger:       logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware(s.config.AllowedOrigins))
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.batchService, UploadLimits{
		MaxFileSize: s.config.MaxFileSize,
		MaxFiles:    s.config.MaxFiles,
	}, s.logger)

	rl := s.config.RateLimit
	processLimit := s.rateLimit(rl.ProcessPerMin)
	exportLimit := s.rateLimit(rl.ExportPerMin)
	debugLimit := s.rateLimit(rl.DebugPerMin)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.POST("/process", processLimit, handlers.Process)
		api.POST("/export", exportLimit, handlers.ExportXLSX)
		api.POST("/export-csv", exportLimit, handlers.ExportCSV)
		api.POST("/debug", debugLimit, handlers.Debug)
	}

	if s.config.StaticDir != "" {
		frontend := newStaticHandler(s.config.StaticDir)
		s.router.GET("/", frontend.serve)
		s.router.NoRoute(frontend.serve)
	} else {
		s.router.GET("/", handlers.Root)
		s.router.NoRoute(notFound)
	}
}

// rateLimit returns a per-client limiter middleware, or a pass-through
// when limiting is disabled
func (s *Server) rateLimit(perMinute int) gin.HandlerFunc {
	if !s.config.RateLimit.Enabled || perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimitMiddleware(newClientLimiter(perMinute, s.config.RateLimit.Burst), s.logger)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
