package invoice

import (
	"regexp"
	"strings"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

var (
	rjilInvoiceNo   = regexp.MustCompile(`(?i)Invoice\s*no\.?\s*:?\s*(\d+)`)
	rjilInvoiceDate = datePattern(`Invoice\s*date`)
	rjilGSTIN       = regexp.MustCompile(`GSTIN\s+([A-Z0-9]{15})`)
	rjilRecipient   = regexp.MustCompile(`(?i)^Recipient\s+([A-Z][A-Z0-9 \t&.\-]*)`)
	rjilRecipientLT = regexp.MustCompile(`(?i)Recipient\s+([A-Z][A-Z0-9 \t]+(?:LIMITED|LTD))`)
	rjilPONumber    = regexp.MustCompile(`(?i)PO\s*No\s*\.?\s*:?\s*([A-Z0-9]+)`)
	rjilPODate      = datePattern(`PO\s*Date\.?`)
	rjilPeriod      = periodPattern(`Invoice\s*period`)
	rjilBulkSMS     = regexp.MustCompile(`(?i)BULK\s*SMS\s+(\d+)\s+([\d,]+\.?\d*)\s+EA\s+([\d.]+)\s+([\d,]+\.?\d*)`)
	rjilAmount      = regexp.MustCompile(`(?i)Total\s*Amount\s*Excluding\s*Taxes\s*:?\s*([\d,]+\.?\d*)`)
	rjilCGST        = regexp.MustCompile(`(?i)CGST\s+[\d.]+\s*%?\s*([\d,]+\.?\d*)`)
	rjilSGST        = regexp.MustCompile(`(?i)SGST\s+[\d.]+\s*%?\s*([\d,]+\.?\d*)`)
	rjilGrandTotal  = regexp.MustCompile(`(?i)Grand\s*Total\s*\(?\s*Including\s*GST\s*\)?\s*:?\s*([\d,]+\.?\d*)`)
)

// RJILParser reads Reliance Jio Infocomm Limited invoices
type RJILParser struct{}

// Parse implements Parser
func (RJILParser) Parse(text string) (*entity.PartialInvoice, error) {
	p := &entity.PartialInvoice{
		InvoiceNo:       findField(rjilInvoiceNo, text),
		InvoiceDate:     findDate(rjilInvoiceDate, text),
		GSTRegistration: findField(rjilGSTIN, text),
		PartyCustomer:   rjilRecipientName(text),
		OrderNo:         findField(rjilPONumber, text),
		OrderDate:       findDate(rjilPODate, text),
		Amount:          parseMoney(findField(rjilAmount, text)),
		CGST:            parseMoney(findField(rjilCGST, text)),
		SGST:            parseMoney(findField(rjilSGST, text)),
		TotalAmount:     parseMoney(findField(rjilGrandTotal, text)),
		Remarks:         extractRemarks(text),
	}
	p.GSTState = gstState(p.GSTRegistration, text)
	p.PeriodFrom, p.PeriodTo = findPeriod(rjilPeriod, text)

	// RJIL bills a single BULK SMS line: HSN, quantity, EA, rate, value
	if m := rjilBulkSMS.FindStringSubmatch(text); m != nil {
		p.DeliveredQty = parseQuantity(m[2])
		p.DeliveredRate = parseRate(m[3])
	}

	applyCombinedTax(text, p)

	if err := requireFields(entity.LayoutRJIL, p); err != nil {
		return nil, err
	}
	return p, nil
}

// rjilRecipientName finds the "Recipient <name>, <address>" line. The page
// header "ORIGINAL FOR RECIPIENT Tax Invoice" also mentions the recipient and
// is skipped.
func rjilRecipientName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "FOR RECIPIENT") {
			continue
		}
		if strings.Contains(upper, "TAX INVOICE") && strings.Contains(upper, "RECIPIENT") {
			continue
		}

		m := rjilRecipient.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		switch strings.ToUpper(name) {
		case "", "TAX INVOICE", "TAX", "INVOICE":
			continue
		}
		return name
	}

	if m := rjilRecipientLT.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if !strings.Contains(strings.ToUpper(name), "TAX INVOICE") {
			return name
		}
	}
	return ""
}
