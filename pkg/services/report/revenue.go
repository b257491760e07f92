package report

import "github.com/shopspring/decimal"

// RevenueInputs are the raw monetary fields a line may carry. Whatever the
// backend actually sent determines which tier of the fallback applies.
type RevenueInputs struct {
	Taxable            decimal.Decimal
	Tax                decimal.Decimal
	Discount           decimal.Decimal
	MembershipDiscount decimal.Decimal
	GrandTotal         decimal.Decimal
	UnitPrice          decimal.Decimal
	Quantity           float64
}

// LineRevenue computes one line's revenue with a strict three-tier fallback:
//
//  1. taxable + tax - discount - membership discount, floored at 0,
//     whenever a non-zero taxable amount is present;
//  2. else the grand-total-like field;
//  3. else unit price x quantity, quantity defaulting to 1.
//
// The taxable-based formula always wins over a grand total that is also
// present.
func LineRevenue(in RevenueInputs) decimal.Decimal {
	if !in.Taxable.IsZero() {
		amount := in.Taxable.
			Add(in.Tax).
			Sub(in.Discount).
			Sub(in.MembershipDiscount)
		if amount.IsNegative() {
			return decimal.Zero
		}
		return amount
	}

	if !in.GrandTotal.IsZero() {
		return in.GrandTotal
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	return in.UnitPrice.Mul(decimal.NewFromFloat(qty))
}
