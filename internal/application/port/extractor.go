package port

import (
	"context"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// TextExtractor turns an uploaded PDF into page-ordered text. Failures wrap
// invoice.ErrExtractionFailure.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, content []byte) (*entity.RawDocument, error)
}

// PDFValidator performs a structural check of a PDF beyond its header
type PDFValidator interface {
	ValidateStructure(content []byte) error
}
