package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePDFUpload(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%âãÏÓ\n")

	tests := []struct {
		name     string
		filename string
		content  []byte
		maxSize  int64
		wantErr  error
	}{
		{
			name:     "valid pdf",
			filename: "invoice.pdf",
			content:  pdf,
		},
		{
			name:     "upper case extension",
			filename: "INVOICE.PDF",
			content:  pdf,
		},
		{
			name:     "wrong extension",
			filename: "invoice.txt",
			content:  pdf,
			wantErr:  ErrNotPDF,
		},
		{
			name:     "missing magic bytes",
			filename: "invoice.pdf",
			content:  []byte("hello world"),
			wantErr:  ErrNotPDF,
		},
		{
			name:     "empty",
			filename: "invoice.pdf",
			content:  nil,
			wantErr:  ErrEmptyFile,
		},
		{
			name:     "too large",
			filename: "invoice.pdf",
			content:  append(append([]byte{}, pdf...), bytes.Repeat([]byte("x"), 64)...),
			maxSize:  32,
			wantErr:  ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePDFUpload(tt.filename, tt.content, tt.maxSize)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "invoice.pdf", SanitizeFilename("invoice.pdf"))
	assert.Equal(t, ".._etc_invoice.pdf", SanitizeFilename("../etc/invoice.pdf"))
	assert.Equal(t, "a_b.pdf", SanitizeFilename("a\\b.pdf"))
	assert.Equal(t, "invoice.pdf", SanitizeFilename("in\x00voice.pdf"))
	assert.Equal(t, "upload.pdf", SanitizeFilename("  "))
}
