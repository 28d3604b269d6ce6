package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleRecords() []entity.InvoiceRecord {
	return []entity.InvoiceRecord{
		{
			SerialNo:         1,
			InvoiceType:      entity.LayoutCloudXP,
			Product:          "SMS",
			InvoiceNo:        "CX-1001",
			InvoiceDate:      entity.NewDate(2024, time.April, 1),
			GSTRegistration:  "27AABCN1234Q1ZM",
			GSTState:         "Maharashtra",
			PartyCustomer:    "NSE CLEARING LIMITED",
			PeriodFrom:       entity.NewDate(2024, time.April, 1),
			PeriodTo:         entity.NewDate(2024, time.April, 30),
			BillingFrequency: entity.FrequencyMonthly,
			TDSApplicable:    true,
			LedgerName:       "Bulk SMS Charges - Apr-24 to Apr-24",
			DeliveredQty:     money("9881102"),
			DeliveredRate:    money("0.090000"),
			Amount:           money("10000"),
			CGST:             money("900"),
			SGST:             money("900"),
			TotalAmount:      money("11800"),
		},
		{
			SerialNo:    2,
			InvoiceType: entity.LayoutJTL,
			Product:     "SMS",
			InvoiceNo:   "JTL2025004567",
			InvoiceDate: entity.NewDate(2025, time.December, 20),
			LedgerName:  "Bulk SMS Charges",
			Amount:      money("21000"),
		},
	}
}

func TestColumns(t *testing.T) {
	require.Len(t, Columns, 24)
	assert.Equal(t, "Sr. No.", Columns[0])
	assert.Equal(t, "Product", Columns[2])
	assert.Equal(t, "Total Amount (with Tax)", Columns[23])
}

func TestRow(t *testing.T) {
	row := Row(sampleRecords()[0], 1)

	require.Len(t, row, len(Columns))
	assert.Equal(t, []string{
		"1", "CLOUDXP", "SMS", "CX-1001", "01/04/2024", "27AABCN1234Q1ZM", "Maharashtra",
		"NSE CLEARING LIMITED", "", "", "01/04/2024", "30/04/2024", "Monthly", "Yes", "No",
		"Bulk SMS Charges - Apr-24 to Apr-24", "", "", "9881102", "0.090000",
		"10000.00", "900.00", "900.00", "11800.00",
	}, row)
}

func TestRow_PositionWhenUnnumbered(t *testing.T) {
	rec := sampleRecords()[1]
	rec.SerialNo = 0

	assert.Equal(t, "7", Row(rec, 7)[0])
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV(sampleRecords())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte(utf8BOM)))
	assert.Contains(t, string(out), "\r\n")

	rows, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "CX-1001", rows[1][3])
	assert.Equal(t, "JTL", rows[2][1])
	assert.Equal(t, "", rows[2][23])
}

func TestWriteCSV_Empty(t *testing.T) {
	out, err := WriteCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	out, err := WriteXLSX(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "CLOUDXP", rows[1][1])
	assert.Equal(t, "11800.00", rows[1][23])
	assert.Equal(t, "JTL2025004567", rows[2][3])

	panes, err := f.GetPanes(SheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestWriteXLSX_ColumnWidths(t *testing.T) {
	recs := sampleRecords()
	recs[0].PartyCustomer = "A VERY LONG CUSTOMER NAME THAT KEEPS GOING WELL PAST FORTY CHARACTERS"

	out, err := WriteXLSX(recs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	// "Sr. No." is the widest value in column A
	width, err := f.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Sr. No.")+2), width)

	width, err = f.GetColWidth(SheetName, "H")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWide), width)
}
