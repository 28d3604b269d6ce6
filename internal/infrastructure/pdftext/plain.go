package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
	"github.com/garyjia/tally-invoice-extractor/internal/invoice"
)

// PlainExtractor reads page text with the pure Go ledongthuc/pdf reader.
// Words on one visual row are joined by spaces and rows by newlines so
// line-oriented field patterns keep working.
type PlainExtractor struct{}

// NewPlainExtractor creates a pure Go extractor
func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

// Extract returns the text of every page in order. Pages without content
// yield an empty string.
func (e *PlainExtractor) Extract(ctx context.Context, filename string, content []byte) (doc *entity.RawDocument, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %s: %v", invoice.ErrExtractionFailure, filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", invoice.ErrExtractionFailure, filename, err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %v", invoice.ErrExtractionFailure, filename, i, err)
		}

		var b strings.Builder
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteString("\n")
		}
		pages = append(pages, b.String())
	}

	return &entity.RawDocument{Filename: filename, Pages: pages}, nil
}
