package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestNormalizer_SpecExampleCloudXP(t *testing.T) {
	kind := Detect(cloudXPMinimalText)
	require.Equal(t, entity.LayoutCloudXP, kind)

	partial, err := CloudXPParser{}.Parse(cloudXPMinimalText)
	require.NoError(t, err)

	rec := NewNormalizer(DefaultTolerance).Normalize(partial, kind)

	assert.Equal(t, entity.LayoutCloudXP, rec.InvoiceType)
	assert.Equal(t, "CX-1001", rec.InvoiceNo)
	assert.Equal(t, "01/04/2024", rec.InvoiceDate.String())
	assert.Equal(t, entity.FrequencyMonthly, rec.BillingFrequency)
	assert.Equal(t, "10000.00", entity.FormatMoney(rec.Amount))
	assert.Equal(t, "11800.00", entity.FormatMoney(rec.TotalAmount))
	assert.Equal(t, "SMS", rec.Product)
	assert.True(t, rec.TDSApplicable)
	assert.False(t, rec.GSTTDSApplicable)
	assert.Equal(t, "Bulk SMS Charges - Apr-24 to Apr-24", rec.LedgerName)
	assert.True(t, rec.Reconciliation.Checked)
	assert.True(t, rec.Reconciliation.Balanced)
}

func TestNormalizer_SampleDocumentsBalance(t *testing.T) {
	n := NewNormalizer(DefaultTolerance)

	for _, text := range []string{cloudXPSampleText, rjilSampleText, jtlSampleText} {
		kind := Detect(text)
		parser, err := ParserFor(kind)
		require.NoError(t, err)

		partial, err := parser.Parse(text)
		require.NoError(t, err)

		rec := n.Normalize(partial, kind)
		assert.True(t, rec.Reconciliation.Balanced, "%s: %s", kind, rec.Reconciliation.Message)
		assert.False(t, rec.Reconciliation.Mismatch())
		assert.Equal(t, entity.FrequencyMonthly, rec.BillingFrequency)
	}
}

func TestNormalizer_Defaults(t *testing.T) {
	partial := &entity.PartialInvoice{
		InvoiceNo:   "X1",
		InvoiceDate: entity.NewDate(2025, time.January, 5),
		Amount:      money("100.00"),
	}

	rec := NewNormalizer(DefaultTolerance).Normalize(partial, entity.LayoutRJIL)

	assert.Equal(t, "SMS", rec.Product)
	assert.True(t, rec.TDSApplicable)
	assert.False(t, rec.GSTTDSApplicable)
	assert.Equal(t, entity.FrequencyNone, rec.BillingFrequency)
	assert.Equal(t, "Bulk SMS Charges", rec.LedgerName)
	assert.False(t, rec.TotalAmount.Valid, "total is only derived when both taxes are known")
	assert.False(t, rec.Reconciliation.Checked)
}

func TestNormalizer_ParserOverridesDefaults(t *testing.T) {
	no := false
	yes := true
	partial := &entity.PartialInvoice{
		InvoiceNo:        "X1",
		InvoiceDate:      entity.NewDate(2025, time.January, 5),
		Amount:           money("100.00"),
		Product:          "RCS",
		TDSApplicable:    &no,
		GSTTDSApplicable: &yes,
	}

	rec := NewNormalizer(DefaultTolerance).Normalize(partial, entity.LayoutJTL)

	assert.Equal(t, "RCS", rec.Product)
	assert.False(t, rec.TDSApplicable)
	assert.True(t, rec.GSTTDSApplicable)
}

func TestNormalizer_ReconciliationMismatchIsFlaggedNotCorrected(t *testing.T) {
	partial := &entity.PartialInvoice{
		InvoiceNo:   "X1",
		InvoiceDate: entity.NewDate(2025, time.January, 5),
		Amount:      money("100.00"),
		CGST:        money("9.00"),
		SGST:        money("9.00"),
		TotalAmount: money("120.00"),
	}

	rec := NewNormalizer(DefaultTolerance).Normalize(partial, entity.LayoutCloudXP)

	assert.Equal(t, "120.00", entity.FormatMoney(rec.TotalAmount))
	assert.True(t, rec.Reconciliation.Mismatch())
	assert.Equal(t, "2.00", rec.Reconciliation.Difference.StringFixed(2))
	assert.Contains(t, rec.Reconciliation.Message, ErrReconciliationMismatch.Error())
}

func TestNormalizer_Tolerance(t *testing.T) {
	partial := &entity.PartialInvoice{
		InvoiceNo:   "X1",
		InvoiceDate: entity.NewDate(2025, time.January, 5),
		Amount:      money("100.00"),
		CGST:        money("9.00"),
		SGST:        money("9.00"),
		TotalAmount: money("118.01"),
	}

	assert.True(t, NewNormalizer(DefaultTolerance).Normalize(partial, entity.LayoutCloudXP).Reconciliation.Balanced)
	assert.True(t, NewNormalizer(decimal.Zero).Normalize(partial, entity.LayoutCloudXP).Reconciliation.Balanced,
		"zero tolerance falls back to the default")
	assert.True(t, NewNormalizer(decimal.RequireFromString("0.001")).Normalize(partial, entity.LayoutCloudXP).Reconciliation.Mismatch())
}

func TestNormalizer_PreservesRatePrecision(t *testing.T) {
	partial := &entity.PartialInvoice{
		InvoiceNo:     "X1",
		InvoiceDate:   entity.NewDate(2025, time.January, 5),
		Amount:        money("100.00"),
		DeliveredRate: decimal.NewNullDecimal(decimal.RequireFromString("0.090000")),
	}

	rec := NewNormalizer(DefaultTolerance).Normalize(partial, entity.LayoutCloudXP)
	assert.Equal(t, "0.090000", entity.FormatRate(rec.DeliveredRate))
}

func TestDeriveFrequency(t *testing.T) {
	day := func(y int, m time.Month, d int) entity.Date { return entity.NewDate(y, m, d) }

	tests := []struct {
		name     string
		from, to entity.Date
		expected entity.BillingFrequency
	}{
		{"one month", day(2025, time.November, 1), day(2025, time.November, 30), entity.FrequencyMonthly},
		{"35 days", day(2025, time.January, 1), day(2025, time.February, 5), entity.FrequencyMonthly},
		{"36 days", day(2025, time.January, 1), day(2025, time.February, 6), entity.FrequencyQuarterly},
		{"quarter", day(2025, time.October, 1), day(2025, time.December, 31), entity.FrequencyQuarterly},
		{"100 days", day(2025, time.January, 1), day(2025, time.April, 11), entity.FrequencyQuarterly},
		{"half year", day(2025, time.January, 1), day(2025, time.June, 30), entity.FrequencyPeriodic},
		{"missing start", entity.Date{}, day(2025, time.June, 30), entity.FrequencyNone},
		{"missing end", day(2025, time.January, 1), entity.Date{}, entity.FrequencyNone},
		{"reversed", day(2025, time.June, 30), day(2025, time.January, 1), entity.FrequencyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveFrequency(tt.from, tt.to))
		})
	}
}

func TestLedgerName(t *testing.T) {
	from := entity.NewDate(2025, time.October, 1)
	to := entity.NewDate(2025, time.December, 31)

	assert.Equal(t, "Bulk SMS Charges - Oct-25 to Dec-25", LedgerName(from, to))
	assert.Equal(t, "Bulk SMS Charges", LedgerName(entity.Date{}, to))
}
