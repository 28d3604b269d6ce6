package container

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/garyjia/tally-invoice-extractor/internal/application/port"
	"github.com/garyjia/tally-invoice-extractor/internal/application/service"
	"github.com/garyjia/tally-invoice-extractor/internal/infrastructure/pdftext"
	httpserver "github.com/garyjia/tally-invoice-extractor/internal/interfaces/http"
	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

// ExtractionBundle holds the PDF text extraction components.
type ExtractionBundle struct {
	Extractor port.TextExtractor
	Validator port.PDFValidator // nil unless strict validation is enabled
}

// ProvideExtraction creates the text extractor chain and, when strict
// validation is enabled, the pdfcpu structure validator.
func ProvideExtraction(cfg *ExtractorConfig, upload *UploadConfig, logger *zap.Logger) (*ExtractionBundle, error) {
	if cfg == nil || upload == nil {
		return nil, fmt.Errorf("extractor config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	extractor, err := pdftext.New(cfg.Engine, cfg.Fallback, utils.NewKVLogger(logger.Named("pdftext")))
	if err != nil {
		return nil, fmt.Errorf("failed to create text extractor: %w", err)
	}

	bundle := &ExtractionBundle{Extractor: extractor}
	if upload.StrictValidation {
		bundle.Validator = pdftext.NewStructureValidator()
	}
	return bundle, nil
}

// ProvideBatchService creates the batch orchestrator.
func ProvideBatchService(
	extraction *ExtractionBundle,
	processing *ProcessingConfig,
	upload *UploadConfig,
	logger *zap.Logger,
) (service.BatchService, error) {
	if extraction == nil || extraction.Extractor == nil {
		return nil, fmt.Errorf("text extractor is required")
	}
	if processing == nil || upload == nil {
		return nil, fmt.Errorf("processing config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return service.NewBatchService(
		extraction.Extractor,
		extraction.Validator,
		service.BatchConfig{
			Workers:     processing.Workers,
			MaxFileSize: upload.MaxFileSize,
			Tolerance:   decimal.NewFromFloat(processing.ReconciliationTolerance),
		},
		utils.NewKVLogger(logger.Named("batch")),
	), nil
}

// ProvideHTTPServer creates the HTTP adapter over the batch service.
func ProvideHTTPServer(cfg *Config, batchService service.BatchService, logger *zap.Logger) (*httpserver.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if batchService == nil {
		return nil, fmt.Errorf("batch service is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
		MaxFileSize:    cfg.Upload.MaxFileSize,
		MaxFiles:       cfg.Upload.MaxFiles,
		RateLimit: httpserver.RateLimitConfig{
			Enabled:       cfg.RateLimit.Enabled,
			ProcessPerMin: cfg.RateLimit.ProcessPerMin,
			ExportPerMin:  cfg.RateLimit.ExportPerMin,
			DebugPerMin:   cfg.RateLimit.DebugPerMin,
			Burst:         cfg.RateLimit.Burst,
		},
	}, batchService, utils.NewKVLogger(logger.Named("http"))), nil
}
