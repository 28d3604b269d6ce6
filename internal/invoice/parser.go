package invoice

import (
	"fmt"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// Parser extracts the fields of one invoice layout from document text
type Parser interface {
	Parse(text string) (*entity.PartialInvoice, error)
}

// ParserFor returns the parser registered for kind
func ParserFor(kind entity.LayoutKind) (Parser, error) {
	if !kind.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
	switch kind {
	case entity.LayoutCloudXP:
		return CloudXPParser{}, nil
	case entity.LayoutRJIL:
		return RJILParser{}, nil
	default:
		return JTLParser{}, nil
	}
}
