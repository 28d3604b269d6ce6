package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected entity.LayoutKind
	}{
		{
			name:     "cloudxp with account number",
			text:     "TAX INVOICE (ORIGINAL)\nAccount Number: 12345",
			expected: entity.LayoutCloudXP,
		},
		{
			name:     "cloudxp with brand name",
			text:     "CloudXP\nTAX INVOICE (ORIGINAL)",
			expected: entity.LayoutCloudXP,
		},
		{
			name:     "case insensitive",
			text:     "tax invoice (original)\naccount number: 12345",
			expected: entity.LayoutCloudXP,
		},
		{
			name:     "jtl",
			text:     "Jio Things Limited\nTAX INVOICE",
			expected: entity.LayoutJTL,
		},
		{
			name:     "rjil",
			text:     "Reliance Jio Infocomm Limited\nORIGINAL FOR RECIPIENT Tax Invoice",
			expected: entity.LayoutRJIL,
		},
		{
			name:     "rjil company name alone",
			text:     "Reliance Jio Infocomm Limited\nSome other content",
			expected: entity.LayoutRJIL,
		},
		{
			name:     "jtl wins over rjil",
			text:     "Jio Things Limited\nA subsidiary of Reliance Jio Infocomm Limited",
			expected: entity.LayoutJTL,
		},
		{
			name:     "cloudxp wins over jtl",
			text:     "TAX INVOICE (ORIGINAL)\nAccount Number: 1\nJio Things Limited",
			expected: entity.LayoutCloudXP,
		},
		{
			name:     "original header without brand mark",
			text:     "TAX INVOICE (ORIGINAL)\nSome other content",
			expected: entity.LayoutUnknown,
		},
		{
			name:     "brand mark without original header",
			text:     "Account Number: 12345\nStatement",
			expected: entity.LayoutUnknown,
		},
		{
			name:     "unrelated document",
			text:     "Some random document content",
			expected: entity.LayoutUnknown,
		},
		{
			name:     "empty text",
			text:     "",
			expected: entity.LayoutUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.text))
		})
	}
}

func TestDetect_SampleDocuments(t *testing.T) {
	assert.Equal(t, entity.LayoutCloudXP, Detect(cloudXPSampleText))
	assert.Equal(t, entity.LayoutRJIL, Detect(rjilSampleText))
	assert.Equal(t, entity.LayoutJTL, Detect(jtlSampleText))
}

func TestDetect_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Detect(jtlSampleText), Detect(jtlSampleText))
	}
}
