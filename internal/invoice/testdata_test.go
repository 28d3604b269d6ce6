package invoice

// Representative extracted text for each supported layout

const cloudXPSampleText = `
TAX INVOICE (ORIGINAL)

Account Number: 123456789
Invoice Number: CXP2025001234
Invoice Date: 15.11.2025
GST Registration Number: 27AABCN1234Q1ZM

Billed To: NSE CLEARING LIMITED
Address: C1 Block, Mumbai

PO Number: ASL/ 5500546061 PO Date: 10.08.2025
Invoice Period: 01-Nov-2025 to 30-Nov-2025

Delivered Segment Charges
1 SMS Service 998599 98,81,102.00 0.090000 8,89,299.18

Submitted Segment DLT
2 SMS Service 998599 1,23,94,994.00 0.020000 2,47,899.88
Charges

Total Amount: 11,37,199.06

CGST @9% 1,02,347.92
SGST @9% 1,02,347.92

Grand Total (Including Tax): 13,41,894.90

Remarks: Bulk SMS Service - PROMOTIONAL
`

const rjilSampleText = `
ORIGINAL FOR RECIPIENT Tax Invoice
Reliance Jio Infocomm Limited

Invoice no. 987654321
Invoice date 25.10.2025
GSTIN 27AAGCR1234E1ZR

Recipient NSE CLEARING LIMITED, C1 BLOCK G, MUMBAI

PO No. 2526NSCCLIT94
PO Date. 01.10.2025
Invoice period 01.10.2025-31.10.2025

BULK SMS 998599 5,00,000 EA 0.15 75,000.00

Total Amount Excluding Taxes 75,000.00

CGST 9.00% 6,750.00
SGST 9.00% 6,750.00

Grand Total (Including GST) 88,500.00

Remarks: Bulk SMS Service - TRANSACTIONAL
`

const jtlSampleText = `
Jio Things Limited
TAX INVOICE

Invoice No. JTL2025004567
Date: 20.12.2025
GSTIN 27AABCJ5678P1Z5

Recipient No    8140817
Recipient       BHARATIYA JANATA PARTY

ORN: 77001234
Invoice Period: 01.12.2025-31.12.2025

SMS # SCRUBBING 998599 50,000.00 0.020000 1,000.00

BSS SERVICE CHARGE 998599 2,50,000.00 0.080000 20,000.00

Total Taxable value 21,000.00

CGST @9% 1,890.00
SGST @9% 1,890.00

Total ( Value is inclusive of Tax ) 24,780.00

Remarks: Bulk SMS Service - TRANSACTIONAL
`

// Minimal CloudXP document without a printed grand total
const cloudXPMinimalText = `
CloudXP
TAX INVOICE (ORIGINAL)
Invoice No: CX-1001
Invoice Date: 01-04-2024
Invoice Period: 01-04-2024 to 30-04-2024
Total Amount: 10,000.00
CGST @9% 900.00
SGST @9% 900.00
`
