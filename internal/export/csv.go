package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// utf8BOM lets spreadsheet tools detect the encoding
const utf8BOM = "\xEF\xBB\xBF"

// WriteCSV renders records as UTF-8 CSV with a byte order mark and CRLF
// line endings
func WriteCSV(records []entity.InvoiceRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, rec := range records {
		if err := w.Write(Row(rec, i+1)); err != nil {
			return nil, fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
