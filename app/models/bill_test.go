package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
)

func TestBillItem_SubtotalRecomputedOnSave(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ClothItem{}, &Stock{}, &Bill{}, &BillItem{}))

	bill := Bill{BillNumber: "BILL-20260831-SUB001", CustomerName: "Hook Test"}
	require.NoError(t, db.Create(&bill).Error)

	// A caller-supplied subtotal is overwritten by the hook.
	line := BillItem{BillID: bill.ID, ItemID: 1, Quantity: 3, UnitPrice: 15.99, Subtotal: 999}
	require.NoError(t, db.Create(&line).Error)
	assert.Equal(t, 3*15.99, line.Subtotal)

	var loaded BillItem
	require.NoError(t, db.First(&loaded, line.ID).Error)
	assert.Equal(t, 3*15.99, loaded.Subtotal)
}

func TestCategoryAndSizeValidation(t *testing.T) {
	assert.True(t, CategoryJeans.Valid())
	assert.False(t, Category("HAT").Valid())

	assert.True(t, SizeXL.Valid())
	assert.False(t, Size("HUGE").Valid())

	assert.Len(t, Categories(), 6)
	assert.Len(t, Sizes(), 6)
}

func TestStockFlags(t *testing.T) {
	s := Stock{Quantity: 2, LowStockThreshold: 2}
	assert.True(t, s.IsLowStock())
	assert.False(t, s.IsOutOfStock())

	s.Quantity = 0
	assert.True(t, s.IsOutOfStock())

	s.Quantity = 3
	assert.False(t, s.IsLowStock())
}
