package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestLineRevenue_TaxableFormulaWinsOverGrandTotal(t *testing.T) {
	amount := LineRevenue(RevenueInputs{
		Taxable:    d(100),
		Tax:        d(18),
		Discount:   d(10),
		GrandTotal: d(999),
	})
	assert.True(t, amount.Equal(d(108)), "got %s", amount)
}

func TestLineRevenue_FlooredAtZero(t *testing.T) {
	amount := LineRevenue(RevenueInputs{
		Taxable:            d(100),
		Discount:           d(90),
		MembershipDiscount: d(50),
	})
	assert.True(t, amount.IsZero())
}

func TestLineRevenue_GrandTotalFallback(t *testing.T) {
	amount := LineRevenue(RevenueInputs{
		GrandTotal: d(750),
		UnitPrice:  d(999),
		Quantity:   3,
	})
	assert.True(t, amount.Equal(d(750)))
}

func TestLineRevenue_UnitPriceFallback(t *testing.T) {
	assert.True(t, LineRevenue(RevenueInputs{UnitPrice: d(250), Quantity: 3}).Equal(d(750)))

	// Quantity defaults to 1.
	assert.True(t, LineRevenue(RevenueInputs{UnitPrice: d(250)}).Equal(d(250)))
}

func TestLineRevenue_EmptyInputs(t *testing.T) {
	assert.True(t, LineRevenue(RevenueInputs{}).IsZero())
}
