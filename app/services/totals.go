package services

import "math"

// BillTotals is the computed money breakdown of a bill.
type BillTotals struct {
	TotalAmount    float64 // sum of line subtotals, before adjustments
	DiscountAmount float64
	TaxAmount      float64
	FinalAmount    float64 // after discount, then tax
}

// ComputeTotals applies the discount-then-tax formula to a set of line
// subtotals. Discount and taxRate are percentages, not fractions.
//
// Rounding happens once, on the persisted TotalAmount and FinalAmount
// (round-half-even to 2 decimal places); intermediates keep full precision
// so rounding error never compounds.
func ComputeTotals(subtotals []float64, discount, taxRate float64) BillTotals {
	var total float64
	for _, s := range subtotals {
		total += s
	}

	discountAmount := total * discount / 100
	afterDiscount := total - discountAmount
	taxAmount := afterDiscount * taxRate / 100

	return BillTotals{
		TotalAmount:    roundCurrency(total),
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		FinalAmount:    roundCurrency(afterDiscount + taxAmount),
	}
}

// roundCurrency rounds to 2 decimal places using round-half-even, the
// bankers' rule, so repeated .5 cases don't drift upward.
func roundCurrency(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
