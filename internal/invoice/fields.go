package invoice

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// dateToken matches one printed date such as 01.10.2025, 01-Nov-2025 or 2024-04-01
const dateToken = `\d{1,2}[-./](?:\d{1,2}|[A-Za-z]{3,9})[-./]\d{4}|\d{4}-\d{1,2}-\d{1,2}`

// dateLayouts are tried in order; single-digit day and month are accepted
var dateLayouts = []string{
	"2.1.2006",
	"2-1-2006",
	"2/1/2006",
	"2-Jan-2006",
	"2-January-2006",
	"2006-1-2",
}

// gstStateCodes maps the first two GSTIN digits to the registered state
var gstStateCodes = map[string]string{
	"01": "Jammu & Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman & Diu",
	"26": "Dadra & Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman & Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh (New)",
	"38": "Ladakh",
}

var (
	remarksPattern       = regexp.MustCompile(`(?i)remarks?\s*:?\s*([^\n]+)`)
	remarksPrefix        = regexp.MustCompile(`(?i)^Bulk\s*SMS\s*Service\s*[-:]\s*`)
	placeOfSupplyPattern = regexp.MustCompile(`(?i)Place\s*of\s*Supply\s*:?\s*([^\n]+)`)
	leadingStateCode     = regexp.MustCompile(`^\d{2}\s*`)
	trailingStateCode    = regexp.MustCompile(`[,\s]*\d+$`)

	combinedTaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Total\s*(?:GST|Tax)\b(?:\s*Amount)?\s*:?\s*([\d,]+\.?\d*)`),
		regexp.MustCompile(`(?i)GST\s*@\s*18\s*%\s*:?\s*([\d,]+\.?\d*)`),
	}

	two = decimal.NewFromInt(2)
)

// findField returns the first capture group of re in text, trimmed
func findField(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseDecimal parses a printed number, dropping digit-grouping commas
// (Indian lakh grouping included). The printed scale is kept.
func parseDecimal(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseMoney(s string) decimal.NullDecimal    { return parseDecimal(s) }
func parseQuantity(s string) decimal.NullDecimal { return parseDecimal(s) }
func parseRate(s string) decimal.NullDecimal     { return parseDecimal(s) }

// ParseDate reads a date in any accepted printed layout.
// The second result is false when s is empty or not a recognized date.
func ParseDate(s string) (entity.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.Date{Time: t}, true
		}
	}
	return entity.Date{}, false
}

// datePattern builds a matcher for label followed by a single date
func datePattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `\s*:?\s*(` + dateToken + `)`)
}

// periodPattern builds a matcher for label followed by two dates separated
// by "to", "-" or "–". The date token anchors each side so a dash inside a
// date is never taken for the separator.
func periodPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `\s*:?\s*(` + dateToken + `)\s*(?:to|-|–)\s*(` + dateToken + `)`)
}

// findDate parses the date captured by re; absent on any failure
func findDate(re *regexp.Regexp, text string) entity.Date {
	d, _ := ParseDate(findField(re, text))
	return d
}

// findPeriod parses both ends of a billing period. Either end failing
// leaves the whole period absent.
func findPeriod(re *regexp.Regexp, text string) (from, to entity.Date) {
	m := re.FindStringSubmatch(text)
	if len(m) < 3 {
		return entity.Date{}, entity.Date{}
	}
	from, okFrom := ParseDate(m[1])
	to, okTo := ParseDate(m[2])
	if !okFrom || !okTo {
		return entity.Date{}, entity.Date{}
	}
	return from, to
}

// StateFromGSTIN maps the GSTIN state code prefix to a state name
func StateFromGSTIN(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstStateCodes[gstin[:2]]
}

// gstState resolves the state from the GSTIN, falling back to the
// "Place of Supply" text with its numeric state code removed
func gstState(gstin, text string) string {
	if state := StateFromGSTIN(gstin); state != "" {
		return state
	}
	place := findField(placeOfSupplyPattern, text)
	if place == "" {
		return ""
	}
	place = leadingStateCode.ReplaceAllString(place, "")
	place = trailingStateCode.ReplaceAllString(place, "")
	return strings.TrimSpace(place)
}

// extractRemarks returns the upper-cased remarks line without its service prefix
func extractRemarks(text string) string {
	remarks := findField(remarksPattern, text)
	if remarks == "" {
		return ""
	}
	remarks = remarksPrefix.ReplaceAllString(remarks, "")
	return strings.ToUpper(strings.TrimSpace(remarks))
}

// applyCombinedTax fills CGST and SGST from a combined tax figure when
// neither tax line was printed. SGST takes the remainder so the two halves
// always sum to the printed figure.
func applyCombinedTax(text string, p *entity.PartialInvoice) {
	if p.CGST.Valid || p.SGST.Valid {
		return
	}
	for _, re := range combinedTaxPatterns {
		combined := parseMoney(findField(re, text))
		if !combined.Valid {
			continue
		}
		cgst := combined.Decimal.Div(two).Round(2)
		p.CGST = decimal.NewNullDecimal(cgst)
		p.SGST = decimal.NewNullDecimal(combined.Decimal.Sub(cgst))
		p.TaxSplitDerived = true
		return
	}
}

// requireFields checks the fields every layout must supply
func requireFields(kind entity.LayoutKind, p *entity.PartialInvoice) error {
	switch {
	case p.InvoiceNo == "":
		return &ExtractionError{Layout: kind, Field: "invoice number"}
	case !p.InvoiceDate.Valid():
		return &ExtractionError{Layout: kind, Field: "invoice date"}
	case !p.Amount.Valid:
		return &ExtractionError{Layout: kind, Field: "amount"}
	}
	return nil
}
