package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display format for all invoice dates (DD/MM/YYYY)
const DateLayout = "02/01/2006"

// Date is a calendar date. The zero value means the date is absent.
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Valid reports whether the date is present
func (d Date) Valid() bool {
	return !d.IsZero()
}

// String formats the date as DD/MM/YYYY, or "" when absent
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON renders the date as a DD/MM/YYYY string
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// RawDocument holds the page-ordered text of one uploaded file
type RawDocument struct {
	Filename string
	Pages    []string
}

// Text joins all pages, one trailing newline per page
func (d *RawDocument) Text() string {
	var b strings.Builder
	for _, p := range d.Pages {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

// HasText reports whether any page contains non-whitespace text
func (d *RawDocument) HasText() bool {
	if d == nil {
		return false
	}
	for _, p := range d.Pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}

// PartialInvoice holds the fields a layout parser was able to supply.
// Fields left at their zero value (or Valid=false) are defaulted by the normalizer.
type PartialInvoice struct {
	InvoiceNo       string
	InvoiceDate     Date
	GSTRegistration string
	GSTState        string
	PartyCustomer   string
	OrderNo         string
	OrderDate       Date
	PeriodFrom      Date
	PeriodTo        Date

	Product          string
	TDSApplicable    *bool
	GSTTDSApplicable *bool

	SubmittedQty  decimal.NullDecimal
	SubmittedRate decimal.NullDecimal
	DeliveredQty  decimal.NullDecimal
	DeliveredRate decimal.NullDecimal
	DLTQty        decimal.NullDecimal

	Amount      decimal.NullDecimal
	CGST        decimal.NullDecimal
	SGST        decimal.NullDecimal
	TotalAmount decimal.NullDecimal

	// TaxSplitDerived is set when CGST/SGST were derived from a combined tax figure
	TaxSplitDerived bool

	Remarks string
}

// Reconciliation records the amount + CGST + SGST = total check
type Reconciliation struct {
	Checked    bool            `json:"checked"`
	Balanced   bool            `json:"balanced"`
	Difference decimal.Decimal `json:"difference"`
	Message    string          `json:"message,omitempty"`
}

// Mismatch reports whether the check ran and failed
func (r Reconciliation) Mismatch() bool {
	return r.Checked && !r.Balanced
}

// InvoiceRecord is the canonical output row, one per parsed document
type InvoiceRecord struct {
	SerialNo         int
	InvoiceType      LayoutKind
	Product          string
	InvoiceNo        string
	InvoiceDate      Date
	GSTRegistration  string
	GSTState         string
	PartyCustomer    string
	OrderNo          string
	OrderDate        Date
	PeriodFrom       Date
	PeriodTo         Date
	BillingFrequency BillingFrequency
	TDSApplicable    bool
	GSTTDSApplicable bool
	LedgerName       string

	SubmittedQty  decimal.NullDecimal
	SubmittedRate decimal.NullDecimal
	DeliveredQty  decimal.NullDecimal
	DeliveredRate decimal.NullDecimal
	DLTQty        decimal.NullDecimal

	Amount      decimal.NullDecimal
	CGST        decimal.NullDecimal
	SGST        decimal.NullDecimal
	TotalAmount decimal.NullDecimal

	TaxSplitDerived bool
	Reconciliation  Reconciliation

	Remarks  string
	Filename string
}

// invoiceRecordJSON is the wire shape returned to the UI
type invoiceRecordJSON struct {
	SerialNo          int            `json:"sr_no"`
	InvoiceType       string         `json:"invoice_type"`
	Product           string         `json:"product"`
	InvoiceNo         string         `json:"invoice_no"`
	InvoiceDate       string         `json:"invoice_date"`
	GSTRegistration   string         `json:"gst_registration"`
	GSTState          string         `json:"gst_state"`
	PartyCustomer     string         `json:"party_customer"`
	OrderNo           string         `json:"order_no"`
	OrderDate         string         `json:"order_date"`
	InvoicePeriodFrom string         `json:"invoice_period_from"`
	InvoicePeriodTo   string         `json:"invoice_period_to"`
	BillingFrequency  string         `json:"billing_frequency"`
	TDSApplicable     string         `json:"tds_applicable"`
	GSTTDSApplicable  string         `json:"gst_tds_applicable"`
	LedgerName        string         `json:"ledger_name"`
	SubmittedQty      string         `json:"submitted_qty"`
	SubmittedRate     string         `json:"submitted_rate"`
	DLTQty            string         `json:"dlt_qty"`
	DeliveredQty      string         `json:"delivered_qty"`
	DeliveredRate     string         `json:"delivered_rate"`
	Amount            string         `json:"amount"`
	CGST              string         `json:"cgst"`
	SGST              string         `json:"sgst"`
	TotalAmount       string         `json:"total_amount"`
	TaxSplitDerived   bool           `json:"tax_split_derived"`
	Reconciliation    Reconciliation `json:"reconciliation"`
	Remarks           string         `json:"remarks"`
	Filename          string         `json:"filename"`
}

// MarshalJSON renders the record with display-formatted values
func (r InvoiceRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(invoiceRecordJSON{
		SerialNo:          r.SerialNo,
		InvoiceType:       r.InvoiceType.String(),
		Product:           r.Product,
		InvoiceNo:         r.InvoiceNo,
		InvoiceDate:       r.InvoiceDate.String(),
		GSTRegistration:   r.GSTRegistration,
		GSTState:          r.GSTState,
		PartyCustomer:     r.PartyCustomer,
		OrderNo:           r.OrderNo,
		OrderDate:         r.OrderDate.String(),
		InvoicePeriodFrom: r.PeriodFrom.String(),
		InvoicePeriodTo:   r.PeriodTo.String(),
		BillingFrequency:  string(r.BillingFrequency),
		TDSApplicable:     YesNo(r.TDSApplicable),
		GSTTDSApplicable:  YesNo(r.GSTTDSApplicable),
		LedgerName:        r.LedgerName,
		SubmittedQty:      FormatQuantity(r.SubmittedQty),
		SubmittedRate:     FormatRate(r.SubmittedRate),
		DLTQty:            FormatQuantity(r.DLTQty),
		DeliveredQty:      FormatQuantity(r.DeliveredQty),
		DeliveredRate:     FormatRate(r.DeliveredRate),
		Amount:            FormatMoney(r.Amount),
		CGST:              FormatMoney(r.CGST),
		SGST:              FormatMoney(r.SGST),
		TotalAmount:       FormatMoney(r.TotalAmount),
		TaxSplitDerived:   r.TaxSplitDerived,
		Reconciliation:    r.Reconciliation,
		Remarks:           r.Remarks,
		Filename:          r.Filename,
	})
}

// FormatMoney renders a currency amount with two decimal places
func FormatMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

// FormatRate renders a rate with the precision it was printed with
func FormatRate(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	places := -d.Decimal.Exponent()
	if places < 0 {
		places = 0
	}
	return d.Decimal.StringFixed(places)
}

// FormatQuantity renders whole-unit counts without a fraction and keeps
// printed precision otherwise
func FormatQuantity(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	if d.Decimal.IsInteger() {
		return d.Decimal.StringFixed(0)
	}
	return FormatRate(d)
}
