package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/garyjia/tally-invoice-extractor/internal/application/port"
	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
	"github.com/garyjia/tally-invoice-extractor/internal/invoice"
	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// UploadFile is one file of a batch request
type UploadFile struct {
	Filename string
	Content  []byte
}

// InspectResult is the debug view of one file: its raw text and detected layout
type InspectResult struct {
	Filename    string `json:"filename"`
	InvoiceType string `json:"invoice_type"`
	RawText     string `json:"raw_text"`
	Error       string `json:"error,omitempty"`
}

// BatchConfig holds orchestrator settings
type BatchConfig struct {
	Workers     int
	MaxFileSize int64
	Tolerance   decimal.Decimal
}

// BatchService runs the extraction pipeline over a batch of uploads
type BatchService interface {
	ProcessBatch(ctx context.Context, files []UploadFile) *entity.BatchResult
	Inspect(ctx context.Context, files []UploadFile) []InspectResult
}

type batchServiceImpl struct {
	extractor  port.TextExtractor
	validator  port.PDFValidator
	normalizer *invoice.Normalizer
	workers    int
	maxSize    int64
	logger     Logger
}

// NewBatchService creates a new BatchService. validator may be nil to skip
// structural PDF checks.
func NewBatchService(
	extractor port.TextExtractor,
	validator port.PDFValidator,
	cfg BatchConfig,
	logger Logger,
) BatchService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = utils.DefaultMaxFileSize
	}

	return &batchServiceImpl{
		extractor:  extractor,
		validator:  validator,
		normalizer: invoice.NewNormalizer(cfg.Tolerance),
		workers:    workers,
		maxSize:    maxSize,
		logger:     logger,
	}
}

// fileOutcome is the result slot owned by exactly one file
type fileOutcome struct {
	record *entity.InvoiceRecord
	err    *entity.ProcessingError
}

// ProcessBatch processes every file independently. A failing file yields one
// ProcessingError and never affects the others. Records and errors keep
// submission order and serial numbers are assigned after all files finish.
func (s *batchServiceImpl) ProcessBatch(ctx context.Context, files []UploadFile) *entity.BatchResult {
	batchID := uuid.NewString()
	outcomes := make([]fileOutcome, len(files))

	s.forEach(ctx, len(files), func(i int) {
		outcomes[i] = s.processFile(ctx, files[i])
	})

	records := make([]entity.InvoiceRecord, 0, len(files))
	var errs []entity.ProcessingError
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, *o.err)
			continue
		}
		rec := *o.record
		rec.SerialNo = len(records) + 1
		records = append(records, rec)
	}

	result := entity.NewBatchResult(batchID, records, errs)
	s.logger.Info("Batch processed",
		"batch_id", batchID,
		"files", len(files),
		"processed", result.Processed,
		"errors", result.Failed,
		"mismatches", result.Mismatches)

	return result
}

// Inspect returns the extracted text and detected layout of each file
func (s *batchServiceImpl) Inspect(ctx context.Context, files []UploadFile) []InspectResult {
	results := make([]InspectResult, len(files))

	s.forEach(ctx, len(files), func(i int) {
		f := files[i]
		res := InspectResult{Filename: f.Filename, InvoiceType: entity.LayoutUnknown.String()}

		doc, err := s.extract(ctx, f)
		if err != nil {
			res.Error = err.Error()
			results[i] = res
			return
		}
		res.RawText = doc.Text()
		res.InvoiceType = invoice.Detect(res.RawText).String()
		results[i] = res
	})

	return results
}

// forEach runs fn for indexes [0, n) on the bounded worker pool
func (s *batchServiceImpl) forEach(ctx context.Context, n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	// workers never return errors; failures are recorded per file
	_ = g.Wait()
}

// processFile runs validate, extract, detect, parse and normalize for one file
func (s *batchServiceImpl) processFile(ctx context.Context, f UploadFile) fileOutcome {
	doc, err := s.extract(ctx, f)
	if err != nil {
		return s.failure(f.Filename, err)
	}

	text := doc.Text()
	kind := invoice.Detect(text)
	parser, err := invoice.ParserFor(kind)
	if err != nil {
		return s.failure(f.Filename, err)
	}

	partial, err := parser.Parse(text)
	if err != nil {
		return s.failure(f.Filename, err)
	}

	rec := s.normalizer.Normalize(partial, kind)
	rec.Filename = f.Filename

	if rec.Reconciliation.Mismatch() {
		s.logger.Warn("Invoice totals do not reconcile",
			"file", f.Filename,
			"invoice_no", rec.InvoiceNo,
			"detail", rec.Reconciliation.Message)
	}

	return fileOutcome{record: &rec}
}

// extract validates the upload and returns its text. A document without any
// text counts as an extraction failure.
func (s *batchServiceImpl) extract(ctx context.Context, f UploadFile) (*entity.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := utils.ValidatePDFUpload(f.Filename, f.Content, s.maxSize); err != nil {
		return nil, err
	}
	if s.validator != nil {
		if err := s.validator.ValidateStructure(f.Content); err != nil {
			return nil, err
		}
	}

	doc, err := s.extractor.Extract(ctx, f.Filename, f.Content)
	if err != nil {
		if errors.Is(err, invoice.ErrExtractionFailure) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", invoice.ErrExtractionFailure, err)
	}
	if !doc.HasText() {
		return nil, fmt.Errorf("%w: document contains no extractable text (scanned or image-only PDF?)", invoice.ErrExtractionFailure)
	}
	return doc, nil
}

func (s *batchServiceImpl) failure(filename string, err error) fileOutcome {
	kind := classify(err)
	s.logger.Warn("Invoice processing failed", "file", filename, "kind", kind, "error", err)
	return fileOutcome{err: &entity.ProcessingError{
		Filename: filename,
		Error:    err.Error(),
		Kind:     kind,
	}}
}

// classify maps a pipeline error to its ProcessingError kind
func classify(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return entity.ErrorKindCanceled
	case errors.Is(err, utils.ErrNotPDF), errors.Is(err, utils.ErrFileTooLarge), errors.Is(err, utils.ErrEmptyFile):
		return entity.ErrorKindValidation
	case errors.Is(err, invoice.ErrUnknownLayout):
		return entity.ErrorKindUnknownLayout
	case errors.Is(err, invoice.ErrMissingField):
		return entity.ErrorKindExtractionError
	default:
		return entity.ErrorKindExtractionFailure
	}
}
