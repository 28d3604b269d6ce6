package invoice

import (
	"regexp"
	"strings"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// CloudXP line items print the description on one line and the figures on
// the next, e.g.
//
//	Delivered Segment Charges
//	1 SMS Service 998599 98,81,102.00 0.090000 8,89,299.18
const cloudXPLineItem = `\s*\n\s*\d+\s+(?:SMS\s+Service|Bulk\s+SMS)\s+(\d+)\s+([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)`

var (
	cxpInvoiceNo   = regexp.MustCompile(`(?i)Invoice\s*(?:Number|No)\.?\s*:?\s*([A-Z0-9\-/]+)`)
	cxpInvoiceDate = datePattern(`Invoice\s*Date`)
	cxpGSTIN       = regexp.MustCompile(`(?i)GST\s*Registration\s*Number\s*:?\s*([A-Z0-9]+)`)
	cxpBilledTo    = regexp.MustCompile(`(?i)Billed\s*To\s*:?\s*([^\n]+)`)
	cxpPONumber    = regexp.MustCompile(`(?i)PO\s*Number\s*:?\s*([A-Z0-9/ \t]+?)(?:\s*PO\s*Date|\s*\n|$)`)
	cxpPODate      = datePattern(`PO\s*Date`)
	cxpPeriod      = periodPattern(`Invoice\s*Period`)
	cxpDelivered   = regexp.MustCompile(`(?i)Delivered\s+Segment\s+Charges?` + cloudXPLineItem)
	cxpSubmitted   = regexp.MustCompile(`(?i)Submitted\s+Segment\s+DLT` + cloudXPLineItem)
	cxpAmount      = regexp.MustCompile(`(?i)Total\s*Amount\s*:?\s*([\d,]+\.?\d*)`)
	cxpCGST        = regexp.MustCompile(`(?i)CGST\s*(?:@\s*[\d.]+\s*%?|[\d.]+\s*%|[\d.]+[ \t]+)?\s*:?\s*([\d,]+\.?\d*)`)
	cxpSGST        = regexp.MustCompile(`(?i)SGST\s*(?:@\s*[\d.]+\s*%?|[\d.]+\s*%|[\d.]+[ \t]+)?\s*:?\s*([\d,]+\.?\d*)`)
	cxpGrandTotal  = regexp.MustCompile(`(?i)Grand\s*Total\s*\(?\s*Including\s*Tax\s*\)?\s*:?\s*([\d,]+\.?\d*)`)
)

// CloudXPParser reads the Jio-branded "TAX INVOICE (ORIGINAL)" layout
type CloudXPParser struct{}

// Parse implements Parser
func (CloudXPParser) Parse(text string) (*entity.PartialInvoice, error) {
	p := &entity.PartialInvoice{
		InvoiceNo:       findField(cxpInvoiceNo, text),
		InvoiceDate:     findDate(cxpInvoiceDate, text),
		GSTRegistration: strings.ToUpper(findField(cxpGSTIN, text)),
		PartyCustomer:   findField(cxpBilledTo, text),
		OrderNo:         findField(cxpPONumber, text),
		OrderDate:       findDate(cxpPODate, text),
		Amount:          parseMoney(findField(cxpAmount, text)),
		CGST:            parseMoney(findField(cxpCGST, text)),
		SGST:            parseMoney(findField(cxpSGST, text)),
		TotalAmount:     parseMoney(findField(cxpGrandTotal, text)),
		Remarks:         extractRemarks(text),
	}
	p.GSTState = gstState(p.GSTRegistration, text)
	p.PeriodFrom, p.PeriodTo = findPeriod(cxpPeriod, text)

	// groups: HSN, quantity, rate, value
	if m := cxpDelivered.FindStringSubmatch(text); m != nil {
		p.DeliveredQty = parseQuantity(m[2])
		p.DeliveredRate = parseRate(m[3])
	}
	if m := cxpSubmitted.FindStringSubmatch(text); m != nil {
		p.SubmittedQty = parseQuantity(m[2])
		p.SubmittedRate = parseRate(m[3])
		p.DLTQty = p.SubmittedQty
	}

	applyCombinedTax(text, p)

	if err := requireFields(entity.LayoutCloudXP, p); err != nil {
		return nil, err
	}
	return p, nil
}
