package entity

// LayoutKind identifies which invoice layout produced a document
type LayoutKind string

// Layout constants
const (
	LayoutCloudXP LayoutKind = "cloudxp"
	LayoutRJIL    LayoutKind = "rjil"
	LayoutJTL     LayoutKind = "jtl"
	LayoutUnknown LayoutKind = "unknown"
)

// String returns the lower-case layout identifier
func (k LayoutKind) String() string {
	return string(k)
}

// DisplayName returns the upper-case label used in exports (e.g. CLOUDXP)
func (k LayoutKind) DisplayName() string {
	switch k {
	case LayoutCloudXP:
		return "CLOUDXP"
	case LayoutRJIL:
		return "RJIL"
	case LayoutJTL:
		return "JTL"
	default:
		return ""
	}
}

// Known reports whether the layout has a parser
func (k LayoutKind) Known() bool {
	return k == LayoutCloudXP || k == LayoutRJIL || k == LayoutJTL
}

// BillingFrequency is derived from the invoice period span
type BillingFrequency string

// Billing frequency constants
const (
	FrequencyNone      BillingFrequency = ""
	FrequencyMonthly   BillingFrequency = "Monthly"
	FrequencyQuarterly BillingFrequency = "Quarterly"
	FrequencyPeriodic  BillingFrequency = "Periodic"
)

// Processing error kinds
const (
	ErrorKindValidation        = "validation"
	ErrorKindExtractionFailure = "extraction_failure"
	ErrorKindUnknownLayout     = "unknown_layout"
	ErrorKindExtractionError   = "extraction_error"
	ErrorKindCanceled          = "canceled"
)

// Display values for boolean flags in exports and API responses
const (
	FlagYes = "Yes"
	FlagNo  = "No"
)

// YesNo renders a boolean flag the way the accounting import expects it
func YesNo(v bool) string {
	if v {
		return FlagYes
	}
	return FlagNo
}
