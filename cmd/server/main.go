package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/tally-invoice-extractor/internal/config"
	"github.com/garyjia/tally-invoice-extractor/internal/container"
	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

const (
	version           = "1.1.0"
	defaultConfigPath = "configs/config.yaml"
)

func main() {
	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Tally invoice extractor",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.Int("workers", cfg.Processing.Workers))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create container", zap.Error(err))
	}
	if err := c.Start(ctx); err != nil {
		logger.Fatal("Failed to start container", zap.Error(err))
	}

	health := c.Health()
	logger.Info("Container health", zap.Bool("overall", health.Overall), zap.Any("components", health.Components))

	// Blocks until a signal arrives or the listener fails
	serveErr := c.HTTPServer().Start(ctx)

	logger.Info("Shutting down server...")

	done := make(chan error, 1)
	go func() { done <- c.Close() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Container shutdown error", zap.Error(err))
		}
	case <-time.After(30 * time.Second):
		logger.Error("Container shutdown timed out")
	}

	if serveErr != nil {
		logger.Error("Server exited with error", zap.Error(serveErr))
		os.Exit(1)
	}
	logger.Info("Server exited successfully")
}

// configPath returns TALLY_CONFIG, or the default file when it exists, or
// "" to run on defaults and environment variables alone
func configPath() string {
	if p := os.Getenv("TALLY_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}
