package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_UpdateStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := seedItem(t, db, "Stocktake", 10, 4)

	threshold := 3
	stock, err := svc.UpdateStock(item.ID, 12, &threshold)
	require.NoError(t, err)
	assert.Equal(t, 12, stock.Quantity)
	assert.Equal(t, 3, stock.LowStockThreshold)

	// Omitting the threshold leaves it alone.
	stock, err = svc.UpdateStock(item.ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Quantity)
	assert.Equal(t, 3, stock.LowStockThreshold)
	assert.True(t, stock.IsLowStock())
}

func TestInventoryService_UpdateStockRejectsNegative(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := seedItem(t, db, "Negative", 10, 4)

	_, err := svc.UpdateStock(item.ID, -1, nil)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.Equal(t, 4, stockOf(t, db, item.ID))
}

func TestInventoryService_UpdateStockUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.UpdateStock(777, 5, nil)

	var notFound *ItemNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestInventoryService_AdjustStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	item := seedItem(t, db, "Adjust", 10, 5)

	stock, err := svc.AdjustStock(item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, stock.Quantity)

	stock, err = svc.AdjustStock(item.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 8, stock.Quantity)

	// A shrinkage correction bigger than what's on hand clamps to zero.
	stock, err = svc.AdjustStock(item.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.Quantity)
}

func TestInventoryService_LowStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	low := seedItem(t, db, "Nearly Gone", 10, 1) // threshold 2
	seedItem(t, db, "Plenty", 10, 50)

	items, err := svc.LowStock()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)
	require.NotNil(t, items[0].Stock)
	assert.Equal(t, 1, items[0].Stock.Quantity)
}
