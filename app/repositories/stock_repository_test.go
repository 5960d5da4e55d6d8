package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ClothItem{}, &models.Stock{},
		&models.Bill{}, &models.BillItem{},
	))
	return db
}

func trackedItem(t *testing.T, db *gorm.DB, sku string, quantity int) models.ClothItem {
	t.Helper()
	item := models.ClothItem{
		Name: sku, Category: models.CategoryShirt, Size: models.SizeM, Price: 10, SKU: sku,
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&models.Stock{ItemID: item.ID, Quantity: quantity}).Error)
	return item
}

func TestDecrementIfSufficient(t *testing.T) {
	db := newRepoDB(t)
	item := trackedItem(t, db, "DEC-1", 10)

	ok, err := DecrementIfSufficient(db, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	stock, err := NewStockRepository(db).ForItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock.Quantity)

	// More than remains: no mutation.
	ok, err = DecrementIfSufficient(db, item.ID, 8)
	require.NoError(t, err)
	assert.False(t, ok)

	stock, err = NewStockRepository(db).ForItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock.Quantity)

	// Down to exactly zero is allowed.
	ok, err = DecrementIfSufficient(db, item.ID, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecrementIfSufficient_Untracked(t *testing.T) {
	db := newRepoDB(t)

	item := models.ClothItem{
		Name: "UNT-1", Category: models.CategoryShirt, Size: models.SizeM, Price: 10, SKU: "UNT-1",
	}
	require.NoError(t, db.Create(&item).Error)

	_, err := DecrementIfSufficient(db, item.ID, 1)
	assert.ErrorIs(t, err, ErrNoStockRecord)
}

func TestStockRepository_AdjustClampsAtZero(t *testing.T) {
	db := newRepoDB(t)
	item := trackedItem(t, db, "ADJ-1", 5)
	repo := NewStockRepository(db)

	stock, err := repo.Adjust(item.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Quantity)

	stock, err = repo.Adjust(item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.Quantity)

	_, err = repo.Adjust(9999, 1)
	assert.ErrorIs(t, err, ErrNoStockRecord)
}

func TestStockRepository_SetQuantity(t *testing.T) {
	db := newRepoDB(t)
	item := trackedItem(t, db, "SET-1", 5)
	repo := NewStockRepository(db)

	threshold := 4
	stock, err := repo.SetQuantity(item.ID, 20, &threshold)
	require.NoError(t, err)
	assert.Equal(t, 20, stock.Quantity)
	assert.Equal(t, 4, stock.LowStockThreshold)

	_, err = repo.SetQuantity(9999, 1, nil)
	assert.ErrorIs(t, err, ErrNoStockRecord)
}

func TestCatalogRepository_DeleteProtectsHistory(t *testing.T) {
	db := newRepoDB(t)
	item := trackedItem(t, db, "HIST-1", 5)

	bill := models.Bill{BillNumber: "BILL-20260831-HIST01", CustomerName: "B"}
	require.NoError(t, db.Create(&bill).Error)
	line := models.BillItem{BillID: bill.ID, ItemID: item.ID, Quantity: 1, UnitPrice: 10}
	require.NoError(t, db.Create(&line).Error)

	err := NewCatalogRepository(db).Delete(item.ID)
	assert.ErrorIs(t, err, ErrItemHasBillingHistory)
}
