package domain

import "github.com/shopspring/decimal"

// VisitDay accumulates one calendar day of customer visits.
type VisitDay struct {
	Date            string // YYYY-MM-DD
	NewCustomers    int
	RepeatCustomers int
	TotalVisits     int
	Revenue         decimal.Decimal
}

// ServiceTotal accumulates sales of one service across the fetched window.
type ServiceTotal struct {
	ServiceID   string
	ServiceName string
	Category    string
	Sales       int
	Quantity    float64
	Gross       decimal.Decimal
	Discount    decimal.Decimal
	Net         decimal.Decimal
}

// CashFlowDay accumulates one day of cash movement for one payment mode.
type CashFlowDay struct {
	Date        string
	PaymentMode string
	Entries     int
	In          decimal.Decimal
	Out         decimal.Decimal
	Net         decimal.Decimal
}

// ReasonTotal accumulates stock-out entries of one reason type.
type ReasonTotal struct {
	Reason     StockOutReason
	Entries    int
	TotalQty   float64
	TotalValue decimal.Decimal
}
