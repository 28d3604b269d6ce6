package config

import (
	"github.com/garyjia/tally-invoice-extractor/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Server: container.ServerConfig{
			Host:           c.Server.Host,
			Port:           c.Server.Port,
			ReadTimeout:    c.Server.ReadTimeout,
			WriteTimeout:   c.Server.WriteTimeout,
			AllowedOrigins: c.Server.AllowedOrigins,
			StaticDir:      c.Server.StaticDir,
		},
		Upload: container.UploadConfig{
			MaxFileSize:      c.Upload.MaxFileSize,
			MaxFiles:         c.Upload.MaxFiles,
			StrictValidation: c.Upload.StrictValidation,
		},
		Processing: container.ProcessingConfig{
			Workers:                 c.Processing.Workers,
			ReconciliationTolerance: c.Processing.ReconciliationTolerance,
		},
		Extractor: container.ExtractorConfig{
			Engine:   c.Extractor.Engine,
			Fallback: c.Extractor.Fallback,
		},
		RateLimit: container.RateLimitConfig{
			Enabled:       c.RateLimit.Enabled,
			ProcessPerMin: c.RateLimit.ProcessPerMin,
			ExportPerMin:  c.RateLimit.ExportPerMin,
			DebugPerMin:   c.RateLimit.DebugPerMin,
			Burst:         c.RateLimit.BurstPerClient,
		},
	}
}
