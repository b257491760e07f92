package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingStatus gates whether a record counts toward totals.
type BillingStatus string

const (
	BillingSuccess   BillingStatus = "success"
	BillingHold      BillingStatus = "hold"
	BillingCancelled BillingStatus = "cancelled"
)

// Countable reports whether a record with this status may contribute to
// aggregates, KPIs or exports. Held and cancelled transactions never do.
func (s BillingStatus) Countable() bool {
	return s == BillingSuccess
}

type StockOutReason string

const (
	ReasonConsumption StockOutReason = "consumption"
	ReasonDamage      StockOutReason = "damage"
	ReasonExpiry      StockOutReason = "expiry"
	ReasonTransfer    StockOutReason = "transfer"
	ReasonAdjustment  StockOutReason = "adjustment"
	ReasonOther       StockOutReason = "other"
)

type CashDirection string

const (
	CashIn  CashDirection = "in"
	CashOut CashDirection = "out"
)

// CustomerVisitRecord is one billed visit, normalized from a raw backend row.
type CustomerVisitRecord struct {
	VisitTime    time.Time
	CustomerKey  string // numeric ID, else phone, else "walk-in"
	CustomerName string
	Phone        string
	GSTIN        string
	VisitCount   int // server-supplied lifetime count, 0 when absent
	Status       BillingStatus
	Revenue      decimal.Decimal
}

// ServiceSaleRecord is one service line sold on a bill.
type ServiceSaleRecord struct {
	ServiceID   string
	ServiceName string
	Category    string
	SaleTime    time.Time
	Quantity    float64
	UnitPrice   decimal.Decimal
	Gross       decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Net         decimal.Decimal
	Status      BillingStatus
	PaymentMode string
}

// StockOutRecord is one stock-out entry (consumption, damage, transfer...).
type StockOutRecord struct {
	ID              string
	ReferenceNumber string
	EntryTime       time.Time
	ReasonType      StockOutReason
	ItemCount       int
	TotalQty        float64
	TotalValue      decimal.Decimal
	Status          BillingStatus
	Notes           string
}

// CashFlowRecord is one cash ledger entry.
type CashFlowRecord struct {
	EntryTime   time.Time
	Direction   CashDirection
	PaymentMode string
	Amount      decimal.Decimal
	Description string
	Status      BillingStatus
}
