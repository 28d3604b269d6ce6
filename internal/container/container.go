package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/tally-invoice-extractor/internal/application/port"
	"github.com/garyjia/tally-invoice-extractor/internal/application/service"
	httpserver "github.com/garyjia/tally-invoice-extractor/internal/interfaces/http"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure
	extraction *ExtractionBundle

	// Application
	batchService service.BatchService

	// Interfaces
	httpServer *httpserver.Server

	// Lifecycle
	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components:
// 1. Text extraction (extractor chain, optional structure validator)
// 2. Batch service
// 3. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("container start aborted: %w", err)
	}
	c.logger.Info("Starting container initialization")

	if err := c.initExtraction(); err != nil {
		return fmt.Errorf("failed to initialize text extraction: %w", err)
	}
	c.logger.Info("Text extraction initialized",
		zap.String("engine", c.config.Extractor.Engine),
		zap.Bool("fallback", c.config.Extractor.Fallback),
		zap.Bool("strict_validation", c.extraction.Validator != nil))

	if err := c.initServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.logger.Info("Application services initialized")

	if err := c.initHTTPServer(); err != nil {
		return fmt.Errorf("failed to initialize http server: %w", err)
	}
	c.logger.Info("HTTP server initialized", zap.String("address", c.httpServer.Address()))

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error
	if c.httpServer != nil {
		if err := c.httpServer.Stop(); err != nil {
			c.logger.Error("Failed to stop http server", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop http server: %w", err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	check := func(name string, ok bool, msg string) {
		if ok {
			status.Components[name] = ComponentHealth{Healthy: true, Message: msg}
			return
		}
		status.Components[name] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	check("extractor", c.extraction != nil && c.extraction.Extractor != nil, c.config.Extractor.Engine)
	check("batch_service", c.batchService != nil, "")
	check("http_server", c.httpServer != nil, "")

	return status
}

func (c *Container) initExtraction() error {
	bundle, err := ProvideExtraction(&c.config.Extractor, &c.config.Upload, c.logger)
	if err != nil {
		return err
	}
	c.extraction = bundle
	return nil
}

func (c *Container) initServices() error {
	svc, err := ProvideBatchService(c.extraction, &c.config.Processing, &c.config.Upload, c.logger)
	if err != nil {
		return err
	}
	c.batchService = svc
	return nil
}

func (c *Container) initHTTPServer() error {
	srv, err := ProvideHTTPServer(c.config, c.batchService, c.logger)
	if err != nil {
		return err
	}
	c.httpServer = srv
	return nil
}

// Getters for accessing container components

// Extractor returns the text extractor.
func (c *Container) Extractor() port.TextExtractor {
	if c.extraction == nil {
		return nil
	}
	return c.extraction.Extractor
}

// BatchService returns the batch orchestrator.
func (c *Container) BatchService() service.BatchService {
	return c.batchService
}

// HTTPServer returns the HTTP adapter.
func (c *Container) HTTPServer() *httpserver.Server {
	return c.httpServer
}
