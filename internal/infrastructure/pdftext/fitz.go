package pdftext

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
	"github.com/garyjia/tally-invoice-extractor/internal/invoice"
)

// FitzExtractor reads page text with MuPDF
type FitzExtractor struct{}

// NewFitzExtractor creates a MuPDF-backed extractor
func NewFitzExtractor() *FitzExtractor {
	return &FitzExtractor{}
}

// Extract returns the text of every page in order
func (e *FitzExtractor) Extract(ctx context.Context, filename string, content []byte) (*entity.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", invoice.ErrExtractionFailure, filename, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %v", invoice.ErrExtractionFailure, filename, i+1, err)
		}
		pages = append(pages, text)
	}

	return &entity.RawDocument{Filename: filename, Pages: pages}, nil
}
