package utils

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultMaxFileSize is the per-file upload limit (50 MB)
const DefaultMaxFileSize int64 = 50 * 1024 * 1024

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrNotPDF       = errors.New("file is not a PDF")
)

var (
	pdfMagic        = []byte("%PDF")
	controlChars    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	pathSeparators  = strings.NewReplacer("/", "_", "\\", "_")
	defaultFilename = "upload.pdf"
)

// ValidatePDFUpload checks the extension, size and magic bytes of an upload
func ValidatePDFUpload(filename string, content []byte, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: %s must have a .pdf extension", ErrNotPDF, filename)
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}
	if int64(len(content)) > maxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, filename, len(content), maxSize)
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		return fmt.Errorf("%w: %s has no PDF header", ErrNotPDF, filename)
	}

	return nil
}

// SanitizeFilename strips control characters and directory components from a
// client-supplied file name
func SanitizeFilename(name string) string {
	name = controlChars.ReplaceAllString(name, "")
	name = pathSeparators.Replace(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return defaultFilename
	}
	return name
}
