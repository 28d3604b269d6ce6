package invoice

import (
	"errors"
	"fmt"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

var (
	// Source errors
	ErrExtractionFailure = errors.New("no text could be extracted from document")
	ErrUnknownLayout     = errors.New("unrecognized invoice layout")

	// Field errors
	ErrMissingField = errors.New("required field not found")

	// Reported on records, never returned as a failure
	ErrReconciliationMismatch = errors.New("total does not match amount + CGST + SGST")
)

// ExtractionError reports a required field a layout parser could not locate
type ExtractionError struct {
	Layout entity.LayoutKind
	Field  string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s invoice: %s: %v", e.Layout.DisplayName(), e.Field, ErrMissingField)
}

func (e *ExtractionError) Unwrap() error {
	return ErrMissingField
}
