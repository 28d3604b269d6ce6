// Package export renders invoice records in the fixed Tally import layout
package export

import (
	"strconv"

	"github.com/garyjia/tally-invoice-extractor/internal/domain/entity"
)

// Columns is the Tally import header, in output order
var Columns = []string{
	"Sr. No.",
	"Invoice Type",
	"Product",
	"Invoice No",
	"Invoice Date",
	"GST Registration",
	"GST State",
	"Party/Customer",
	"Order No",
	"Order Date",
	"Invoice Period From",
	"Invoice Period To",
	"Billing Frequency",
	"TDS Applicable",
	"GST TDS Applicable",
	"Ledger Name",
	"Submitted Qty",
	"Submitted Rate",
	"Delivered Qty",
	"Delivered Rate",
	"Amount",
	"CGST",
	"SGST",
	"Total Amount (with Tax)",
}

// Row renders one record as display strings aligned with Columns. Records
// without a serial number are numbered by position (1-based).
func Row(rec entity.InvoiceRecord, position int) []string {
	serial := rec.SerialNo
	if serial <= 0 {
		serial = position
	}

	return []string{
		strconv.Itoa(serial),
		rec.InvoiceType.DisplayName(),
		rec.Product,
		rec.InvoiceNo,
		rec.InvoiceDate.String(),
		rec.GSTRegistration,
		rec.GSTState,
		rec.PartyCustomer,
		rec.OrderNo,
		rec.OrderDate.String(),
		rec.PeriodFrom.String(),
		rec.PeriodTo.String(),
		string(rec.BillingFrequency),
		entity.YesNo(rec.TDSApplicable),
		entity.YesNo(rec.GSTTDSApplicable),
		rec.LedgerName,
		entity.FormatQuantity(rec.SubmittedQty),
		entity.FormatRate(rec.SubmittedRate),
		entity.FormatQuantity(rec.DeliveredQty),
		entity.FormatRate(rec.DeliveredRate),
		entity.FormatMoney(rec.Amount),
		entity.FormatMoney(rec.CGST),
		entity.FormatMoney(rec.SGST),
		entity.FormatMoney(rec.TotalAmount),
	}
}
