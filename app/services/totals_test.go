package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_DiscountThenTax(t *testing.T) {
	subtotals := []float64{31.98, 35.99} // 67.97

	for _, discount := range []float64{0, 10, 50} {
		for _, taxRate := range []float64{0, 5, 18} {
			name := fmt.Sprintf("discount=%.0f tax=%.0f", discount, taxRate)
			t.Run(name, func(t *testing.T) {
				got := ComputeTotals(subtotals, discount, taxRate)

				afterDiscount := 67.97 * (1 - discount/100)
				want := math.RoundToEven(afterDiscount*(1+taxRate/100)*100) / 100

				assert.Equal(t, 67.97, got.TotalAmount)
				assert.Equal(t, want, got.FinalAmount)
			})
		}
	}
}

func TestComputeTotals_ReferenceScenario(t *testing.T) {
	// 2 × 15.99 + 1 × 35.99, 10% off, 5% tax.
	got := ComputeTotals([]float64{31.98, 35.99}, 10, 5)

	assert.Equal(t, 67.97, got.TotalAmount)
	assert.InDelta(t, 6.797, got.DiscountAmount, 1e-9)
	assert.InDelta(t, 3.05865, got.TaxAmount, 1e-9)
	assert.Equal(t, 64.23, got.FinalAmount)
}

func TestComputeTotals_EmptyOrder(t *testing.T) {
	got := ComputeTotals(nil, 10, 18)

	assert.Zero(t, got.TotalAmount)
	assert.Zero(t, got.FinalAmount)
}

func TestRoundCurrency_HalfEven(t *testing.T) {
	// Bankers' rounding: ties go to the even cent.
	assert.Equal(t, 0.12, roundCurrency(0.125))
	assert.Equal(t, 0.14, roundCurrency(0.135))
	assert.Equal(t, 1.0, roundCurrency(0.995))
}
