package entity

// ProcessingError records why one uploaded file produced no record
type ProcessingError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
}

// BatchResult aggregates the outcome of one batch request.
// Records and Errors are in file submission order.
type BatchResult struct {
	BatchID    string            `json:"batch_id"`
	Records    []InvoiceRecord   `json:"data"`
	Errors     []ProcessingError `json:"error_details"`
	Processed  int               `json:"processed"`
	Failed     int               `json:"errors"`
	Mismatches int               `json:"mismatches"`
}

// NewBatchResult builds a result and derives its counts
func NewBatchResult(batchID string, records []InvoiceRecord, errs []ProcessingError) *BatchResult {
	if records == nil {
		records = []InvoiceRecord{}
	}
	if errs == nil {
		errs = []ProcessingError{}
	}

	mismatches := 0
	for _, r := range records {
		if r.Reconciliation.Mismatch() {
			mismatches++
		}
	}

	return &BatchResult{
		BatchID:    batchID,
		Records:    records,
		Errors:     errs,
		Processed:  len(records),
		Failed:     len(errs),
		Mismatches: mismatches,
	}
}

// Empty reports whether no file produced a record
func (b *BatchResult) Empty() bool {
	return len(b.Records) == 0
}
