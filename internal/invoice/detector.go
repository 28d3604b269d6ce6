package invoice

import (
	"strings"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// Layout signatures, matched against upper-cased text
const (
	markAccountNumber   = "ACCOUNT NUMBER"
	markCloudXP         = "CLOUDXP"
	markOriginalInvoice = "TAX INVOICE (ORIGINAL)"
	markJTL             = "JIO THINGS LIMITED"
	markRJIL            = "RELIANCE JIO INFOCOMM LIMITED"
)

// Detect classifies extracted text into one of the known layouts.
// Checks run in a fixed order; JTL is checked before RJIL because both
// share the Jio corporate phrasing and the JTL marker is more specific.
func Detect(text string) entity.LayoutKind {
	upper := strings.ToUpper(text)

	hasBrand := strings.Contains(upper, markAccountNumber) || strings.Contains(upper, markCloudXP)
	switch {
	case hasBrand && strings.Contains(upper, markOriginalInvoice):
		return entity.LayoutCloudXP
	case strings.Contains(upper, markJTL):
		return entity.LayoutJTL
	case strings.Contains(upper, markRJIL):
		return entity.LayoutRJIL
	default:
		return entity.LayoutUnknown
	}
}
