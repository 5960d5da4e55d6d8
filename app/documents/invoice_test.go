package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
)

func sampleBill() models.Bill {
	item := models.ClothItem{Name: "Oxford Shirt"}
	return models.Bill{
		Model:        gorm.Model{ID: 1, CreatedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)},
		BillNumber:   "BILL-20260831-AB12CD",
		CustomerName: "Asha Patel",
		Discount:     10,
		TaxRate:      5,
		TotalAmount:  67.97,
		FinalAmount:  64.23,
		Items: []models.BillItem{
			{ItemID: 1, Quantity: 2, UnitPrice: 15.99, Subtotal: 31.98, Item: &item},
			{ItemID: 2, Quantity: 1, UnitPrice: 35.99, Subtotal: 35.99},
		},
	}
}

func TestRenderBill(t *testing.T) {
	doc, err := RenderBill(sampleBill())
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "BILL-20260831-AB12CD")
	assert.Contains(t, html, "Asha Patel")
	assert.Contains(t, html, "Oxford Shirt")
	// Lines without a preloaded catalog row fall back to the item id.
	assert.Contains(t, html, "Item #2")
	assert.Contains(t, html, "67.97")
	assert.Contains(t, html, "64.23")
	// Display-only amounts derived from the persisted fields.
	assert.Contains(t, html, "-6.80")
	assert.Contains(t, html, "3.06")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "BILL-20260831-AB12CD.html", FileName(sampleBill()))
}
