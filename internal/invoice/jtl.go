package invoice

import (
	"regexp"
	"strings"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

const jtlLineItem = `\s+(\d+)\s+([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)`

var (
	jtlInvoiceNo    = regexp.MustCompile(`(?i)Invoice\s*No\.?\s*:?\s*([A-Z0-9]+)`)
	jtlInvoiceDate  = regexp.MustCompile(`(?i)Date\s*:?\s*(\d{1,2}[./]\d{1,2}[./]\d{4})`)
	jtlGSTIN        = regexp.MustCompile(`GSTIN\s+([A-Z0-9]{15})`)
	jtlRecipient    = regexp.MustCompile(`(?i)^Recipient\s+(.+)$`)
	jtlRecipientNo  = regexp.MustCompile(`(?i)^No\b`)
	jtlName         = regexp.MustCompile(`(?i)^[A-Z][A-Z0-9 \t&.\-]*`)
	jtlNameTail     = regexp.MustCompile(`(?i)\s+(?:Date\b|Invoice\b|\d{1,2}[./])`)
	jtlORN          = regexp.MustCompile(`(?i)ORN\s*:?\s*(\d+)`)
	jtlPeriod       = periodPattern(`Invoice\s*Period`)
	jtlSubmitted    = regexp.MustCompile(`(?i)(?:SMS\s*#?\s*SCRUBBING|DLT\s*COUNT)` + jtlLineItem)
	jtlDelivered    = regexp.MustCompile(`(?i)BSS\s*SERVICE\s*CHARGE` + jtlLineItem)
	jtlAmount       = regexp.MustCompile(`(?i)Total\s*Taxable\s*value\s*:?\s*([\d,]+\.?\d*)`)
	jtlCGST         = regexp.MustCompile(`(?i)CGST\s*@?\s*\d+\s*%?\s*([\d,]+\.?\d*)`)
	jtlSGST         = regexp.MustCompile(`(?i)SGST\s*@?\s*\d+\s*%?\s*([\d,]+\.?\d*)`)
	jtlInclusiveTot = regexp.MustCompile(`(?i)Total\s*\(\s*Value\s*is\s*inclusive\s*of\s*Tax\s*\)\s*:?\s*([\d,]+\.?\d*)`)
)

// JTLParser reads Jio Things Limited invoices. JTL prints an order
// reference number (ORN) in place of a PO and no order date.
type JTLParser struct{}

// Parse implements Parser
func (JTLParser) Parse(text string) (*entity.PartialInvoice, error) {
	invoiceDate, _ := ParseDate(findField(jtlInvoiceDate, text))

	p := &entity.PartialInvoice{
		InvoiceNo:       findField(jtlInvoiceNo, text),
		InvoiceDate:     invoiceDate,
		GSTRegistration: findField(jtlGSTIN, text),
		PartyCustomer:   jtlRecipientName(text),
		OrderNo:         findField(jtlORN, text),
		Amount:          parseMoney(findField(jtlAmount, text)),
		CGST:            parseMoney(findField(jtlCGST, text)),
		SGST:            parseMoney(findField(jtlSGST, text)),
		TotalAmount:     parseMoney(findField(jtlInclusiveTot, text)),
		Remarks:         extractRemarks(text),
	}
	p.GSTState = gstState(p.GSTRegistration, text)
	p.PeriodFrom, p.PeriodTo = findPeriod(jtlPeriod, text)

	// SCRUBBING / DLT COUNT carries the submitted count, BSS SERVICE CHARGE the delivered one
	if m := jtlSubmitted.FindStringSubmatch(text); m != nil {
		p.SubmittedQty = parseQuantity(m[2])
		p.SubmittedRate = parseRate(m[3])
		p.DLTQty = p.SubmittedQty
	}
	if m := jtlDelivered.FindStringSubmatch(text); m != nil {
		p.DeliveredQty = parseQuantity(m[2])
		p.DeliveredRate = parseRate(m[3])
	}

	applyCombinedTax(text, p)

	if err := requireFields(entity.LayoutJTL, p); err != nil {
		return nil, err
	}
	return p, nil
}

// jtlRecipientName returns the name from the "Recipient <name>" line,
// ignoring the "Recipient No <number>" line printed above it
func jtlRecipientName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		m := jtlRecipient.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])
		if jtlRecipientNo.MatchString(rest) {
			continue
		}

		name := jtlName.FindString(rest)
		if loc := jtlNameTail.FindStringIndex(name); loc != nil {
			name = name[:loc[0]]
		}
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}
