package pdftext

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/tally-invoice-extractor/internal/application/port"
	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Warn(msg string, keysAndValues ...interface{})
}

// Engine names accepted by New
const (
	EngineFitz = "fitz"
	EnginePDF  = "pdf"
)

// Chain tries a fallback extractor when the primary one fails or returns no text
type Chain struct {
	primary  port.TextExtractor
	fallback port.TextExtractor
	logger   Logger
}

// NewChain creates a fallback chain
func NewChain(primary, fallback port.TextExtractor, logger Logger) *Chain {
	return &Chain{primary: primary, fallback: fallback, logger: logger}
}

// Extract implements port.TextExtractor
func (c *Chain) Extract(ctx context.Context, filename string, content []byte) (*entity.RawDocument, error) {
	doc, err := c.primary.Extract(ctx, filename, content)
	if err == nil && doc.HasText() {
		return doc, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reason := "no text"
	if err != nil {
		reason = err.Error()
	}
	c.logger.Warn("Primary text extraction unusable, trying fallback", "file", filename, "reason", reason)

	fallbackDoc, fallbackErr := c.fallback.Extract(ctx, filename, content)
	if fallbackErr != nil {
		if err != nil {
			return nil, errors.Join(err, fallbackErr)
		}
		// primary produced an empty document; report that rather than the fallback failure
		return doc, nil
	}
	return fallbackDoc, nil
}

// New builds the extractor selected by engine, optionally chained to the
// other engine as a fallback
func New(engine string, fallback bool, logger Logger) (port.TextExtractor, error) {
	var primary, secondary port.TextExtractor
	switch engine {
	case EngineFitz, "":
		primary, secondary = NewFitzExtractor(), NewPlainExtractor()
	case EnginePDF:
		primary, secondary = NewPlainExtractor(), NewFitzExtractor()
	default:
		return nil, fmt.Errorf("unknown extractor engine %q", engine)
	}

	if !fallback {
		return primary, nil
	}
	return NewChain(primary, secondary, logger), nil
}

var _ port.TextExtractor = (*Chain)(nil)
