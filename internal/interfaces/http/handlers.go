package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/tally-invoice-extractor/internal/application/service"
	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
	"github.com/garyjia/tally-invoice-extractor/internal/export"
	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

// uploadField is the multipart field carrying the PDFs
const uploadField = "files"

// Download names and content types
const (
	xlsxFilename    = "tally_import.xlsx"
	csvFilename     = "tally_import.csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

var (
	errNoFiles       = errors.New("no files uploaded")
	errTooManyFiles  = errors.New("too many files")
	errNothingParsed = errors.New("no invoices could be processed")
)

// UploadLimits bounds one multipart request
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	batchService service.BatchService
	limits       UploadLimits
	logger       Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(batchService service.BatchService, limits UploadLimits, logger Logger) *Handlers {
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = utils.DefaultMaxFileSize
	}
	return &Handlers{
		batchService: batchService,
		limits:       limits,
		logger:       logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ProcessResponse is the body of POST /api/process
type ProcessResponse struct {
	Success bool `json:"success"`
	*entity.BatchResult
}

// ExportErrorResponse is returned when an export has no rows to render
type ExportErrorResponse struct {
	Success      bool                     `json:"success"`
	Error        string                   `json:"error"`
	ErrorDetails []entity.ProcessingError `json:"error_details"`
}

// DebugResponse is the body of POST /api/debug
type DebugResponse struct {
	Results []service.InspectResult `json:"results"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Root handles GET / when no frontend is bundled
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice Data Extraction API",
		"status":  "running",
	})
}

// Process handles POST /api/process
func (h *Handlers) Process(c *gin.Context) {
	files, ok := h.uploads(c)
	if !ok {
		return
	}

	result := h.batchService.ProcessBatch(c.Request.Context(), files)

	c.JSON(http.StatusOK, ProcessResponse{Success: true, BatchResult: result})
}

// ExportXLSX handles POST /api/export
func (h *Handlers) ExportXLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxFilename, xlsxContentType, export.WriteXLSX)
}

// ExportCSV handles POST /api/export-csv
func (h *Handlers) ExportCSV(c *gin.Context) {
	h.export(c, "csv", csvFilename, csvContentType, export.WriteCSV)
}

func (h *Handlers) export(
	c *gin.Context,
	format, filename, contentType string,
	render func([]entity.InvoiceRecord) ([]byte, error),
) {
	files, ok := h.uploads(c)
	if !ok {
		return
	}

	result := h.batchService.ProcessBatch(c.Request.Context(), files)
	if result.Empty() {
		c.JSON(http.StatusBadRequest, ExportErrorResponse{
			Success:      false,
			Error:        errNothingParsed.Error(),
			ErrorDetails: result.Errors,
		})
		return
	}

	body, err := render(result.Records)
	if err != nil {
		h.logger.Error("Failed to render export", "format", format, "batch_id", result.BatchID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to generate export file",
		})
		return
	}

	h.logger.Info("Export generated", "format", format, "batch_id", result.BatchID, "rows", len(result.Records))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, body)
}

// Debug handles POST /api/debug
func (h *Handlers) Debug(c *gin.Context) {
	files, ok := h.uploads(c)
	if !ok {
		return
	}

	results := h.batchService.Inspect(c.Request.Context(), files)

	c.JSON(http.StatusOK, DebugResponse{Results: results})
}

// uploads reads the multipart files or writes a 400 response
func (h *Handlers) uploads(c *gin.Context) ([]service.UploadFile, bool) {
	files, err := h.readUploads(c)
	if err != nil {
		h.logger.Warn("Rejected upload request", "error", err, "client_ip", c.ClientIP())
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return nil, false
	}
	return files, true
}

func (h *Handlers) readUploads(c *gin.Context) ([]service.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, errNoFiles
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	headers := form.File[uploadField]
	if len(headers) == 0 {
		return nil, errNoFiles
	}
	if h.limits.MaxFiles > 0 && len(headers) > h.limits.MaxFiles {
		return nil, fmt.Errorf("%w: %d uploaded, limit is %d", errTooManyFiles, len(headers), h.limits.MaxFiles)
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		content, err := h.readFile(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		files = append(files, service.UploadFile{
			Filename: utils.SanitizeFilename(fh.Filename),
			Content:  content,
		})
	}
	return files, nil
}

// readFile reads at most one byte past the size limit so oversized files are
// reported by validation without buffering them whole
func (h *Handlers) readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, h.limits.MaxFileSize+1))
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Success: false, Error: "not found"})
}
