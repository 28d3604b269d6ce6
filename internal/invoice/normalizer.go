package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// Billing frequency thresholds in days
const (
	monthlyMaxDays   = 35
	quarterlyMaxDays = 100
)

// LedgerPrefix is the Tally ledger name used when no period is known
const LedgerPrefix = "Bulk SMS Charges"

// DefaultTolerance is the reconciliation tolerance in rupees
var DefaultTolerance = decimal.RequireFromString("0.01")

// Defaults holds the values applied to fields a parser leaves absent
type Defaults struct {
	Product          string
	TDSApplicable    bool
	GSTTDSApplicable bool
}

// StandardDefaults is the defaults table every layout shares
var StandardDefaults = Defaults{
	Product:          "SMS",
	TDSApplicable:    true,
	GSTTDSApplicable: false,
}

// Normalizer turns a PartialInvoice into a complete InvoiceRecord
type Normalizer struct {
	tolerance decimal.Decimal
	defaults  Defaults
}

// NewNormalizer creates a normalizer. A non-positive tolerance falls back to DefaultTolerance.
func NewNormalizer(tolerance decimal.Decimal) *Normalizer {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	return &Normalizer{
		tolerance: tolerance,
		defaults:  StandardDefaults,
	}
}

// Normalize applies defaults, derives billing frequency, ledger name and an
// absent total, then runs the reconciliation check. Serial number and
// filename are left for the caller.
func (n *Normalizer) Normalize(p *entity.PartialInvoice, kind entity.LayoutKind) entity.InvoiceRecord {
	rec := entity.InvoiceRecord{
		InvoiceType:      kind,
		Product:          p.Product,
		InvoiceNo:        p.InvoiceNo,
		InvoiceDate:      p.InvoiceDate,
		GSTRegistration:  p.GSTRegistration,
		GSTState:         p.GSTState,
		PartyCustomer:    p.PartyCustomer,
		OrderNo:          p.OrderNo,
		OrderDate:        p.OrderDate,
		PeriodFrom:       p.PeriodFrom,
		PeriodTo:         p.PeriodTo,
		TDSApplicable:    n.defaults.TDSApplicable,
		GSTTDSApplicable: n.defaults.GSTTDSApplicable,
		SubmittedQty:     p.SubmittedQty,
		SubmittedRate:    p.SubmittedRate,
		DeliveredQty:     p.DeliveredQty,
		DeliveredRate:    p.DeliveredRate,
		DLTQty:           p.DLTQty,
		Amount:           p.Amount,
		CGST:             p.CGST,
		SGST:             p.SGST,
		TotalAmount:      p.TotalAmount,
		TaxSplitDerived:  p.TaxSplitDerived,
		Remarks:          p.Remarks,
	}

	if rec.Product == "" {
		rec.Product = n.defaults.Product
	}
	if p.TDSApplicable != nil {
		rec.TDSApplicable = *p.TDSApplicable
	}
	if p.GSTTDSApplicable != nil {
		rec.GSTTDSApplicable = *p.GSTTDSApplicable
	}

	rec.BillingFrequency = DeriveFrequency(rec.PeriodFrom, rec.PeriodTo)
	rec.LedgerName = LedgerName(rec.PeriodFrom, rec.PeriodTo)

	if !rec.TotalAmount.Valid && rec.Amount.Valid && rec.CGST.Valid && rec.SGST.Valid {
		rec.TotalAmount = decimal.NewNullDecimal(rec.Amount.Decimal.Add(rec.CGST.Decimal).Add(rec.SGST.Decimal))
	}
	rec.Reconciliation = n.Reconcile(rec)

	return rec
}

// Reconcile checks total = amount + CGST + SGST within tolerance. The check
// is skipped when any of the four figures is absent.
func (n *Normalizer) Reconcile(rec entity.InvoiceRecord) entity.Reconciliation {
	if !rec.Amount.Valid || !rec.CGST.Valid || !rec.SGST.Valid || !rec.TotalAmount.Valid {
		return entity.Reconciliation{}
	}

	expected := rec.Amount.Decimal.Add(rec.CGST.Decimal).Add(rec.SGST.Decimal)
	diff := rec.TotalAmount.Decimal.Sub(expected)
	if diff.Abs().LessThanOrEqual(n.tolerance) {
		return entity.Reconciliation{Checked: true, Balanced: true, Difference: diff}
	}
	return entity.Reconciliation{
		Checked:    true,
		Difference: diff,
		Message: fmt.Sprintf("%v: total %s, expected %s (difference %s)",
			ErrReconciliationMismatch,
			rec.TotalAmount.Decimal.StringFixed(2),
			expected.StringFixed(2),
			diff.StringFixed(2)),
	}
}

// DeriveFrequency classifies a billing period by its length in days.
// It returns FrequencyNone when either end is absent or the period runs backwards.
func DeriveFrequency(from, to entity.Date) entity.BillingFrequency {
	if !from.Valid() || !to.Valid() || to.Before(from.Time) {
		return entity.FrequencyNone
	}

	days := int(to.Sub(from.Time).Hours() / 24)
	switch {
	case days <= monthlyMaxDays:
		return entity.FrequencyMonthly
	case days <= quarterlyMaxDays:
		return entity.FrequencyQuarterly
	default:
		return entity.FrequencyPeriodic
	}
}

// LedgerName renders "Bulk SMS Charges - Oct-25 to Dec-25"
func LedgerName(from, to entity.Date) string {
	if !from.Valid() || !to.Valid() {
		return LedgerPrefix
	}
	return fmt.Sprintf("%s - %s to %s", LedgerPrefix, from.Format("Jan-06"), to.Format("Jan-06"))
}
