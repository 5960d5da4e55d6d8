package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
)

// newTestDB opens an isolated in-memory database with the billing schema.
// Capped at one connection so every goroutine sees the same sqlite memory.
func newTestDB(t *testing.T) *gorm.DB {
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

// seedItem creates a catalog item with a stock row. A negative quantity
// seeds an untracked item (no stock row at all).
func seedItem(t *testing.T, db *gorm.DB, name string, price float64, quantity int) models.ClothItem {
	t.Helper()

	item := models.ClothItem{
		Name:     name,
		Category: models.CategoryShirt,
		Size:     models.SizeM,
		Price:    price,
		SKU:      "TST-" + name,
	}
	require.NoError(t, db.Create(&item).Error)

	if quantity >= 0 {
		stock := models.Stock{ItemID: item.ID, Quantity: quantity, LowStockThreshold: 2}
		require.NoError(t, db.Create(&stock).Error)
	}
	return item
}

func stockOf(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()
	var stock models.Stock
	require.NoError(t, db.Where("item_id = ?", itemID).First(&stock).Error)
	return stock.Quantity
}

func billCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Bill{}).Count(&n).Error)
	return n
}

func TestCreateBill_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	itemA := seedItem(t, db, "Oxford Shirt", 15.99, 10)
	itemB := seedItem(t, db, "Denim Jacket", 35.99, 5)

	res, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Asha Patel",
		Discount:     10,
		TaxRate:      5,
		Items: []BillLineInput{
			{ItemID: itemA.ID, Quantity: 2},
			{ItemID: itemB.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	bill := res.Bill
	assert.Regexp(t, billNumberPattern, bill.BillNumber)
	assert.Equal(t, 67.97, bill.TotalAmount)
	assert.Equal(t, 64.23, bill.FinalAmount)
	require.Len(t, bill.Items, 2)
	assert.Equal(t, 31.98, bill.Items[0].Subtotal)
	assert.Equal(t, 35.99, bill.Items[1].Subtotal)

	assert.Equal(t, 8, stockOf(t, db, itemA.ID))
	assert.Equal(t, 4, stockOf(t, db, itemB.ID))
	assert.False(t, res.EmailQueued)
}

func TestCreateBill_ExactDecrement(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	item := seedItem(t, db, "Chinos", 24.50, 10)

	res, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Walk-in",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, stockOf(t, db, item.ID))
	require.Len(t, res.Bill.Items, 1)
	assert.Equal(t, 24.50, res.Bill.Items[0].UnitPrice)
	assert.Equal(t, 3*24.50, res.Bill.Items[0].Subtotal)
}

func TestCreateBill_TotalsGrid(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	itemA := seedItem(t, db, "Grid A", 15.99, 1000)
	itemB := seedItem(t, db, "Grid B", 35.99, 1000)

	for _, discount := range []float64{0, 10, 50} {
		for _, taxRate := range []float64{0, 5, 18} {
			name := fmt.Sprintf("discount=%.0f tax=%.0f", discount, taxRate)
			t.Run(name, func(t *testing.T) {
				res, err := svc.CreateBill(context.Background(), CreateBillInput{
					CustomerName: "Grid",
					Discount:     discount,
					TaxRate:      taxRate,
					Items: []BillLineInput{
						{ItemID: itemA.ID, Quantity: 2},
						{ItemID: itemB.ID, Quantity: 1},
					},
				})
				require.NoError(t, err)

				want := ComputeTotals([]float64{31.98, 35.99}, discount, taxRate)
				assert.Equal(t, want.TotalAmount, res.Bill.TotalAmount)
				assert.Equal(t, want.FinalAmount, res.Bill.FinalAmount)
			})
		}
	}
}

func TestCreateBill_InsufficientStockLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	itemA := seedItem(t, db, "itemA", 15.99, 10)
	itemB := seedItem(t, db, "itemB", 35.99, 0)

	_, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Asha Patel",
		Items: []BillLineInput{
			{ItemID: itemA.ID, Quantity: 2},
			{ItemID: itemB.ID, Quantity: 1},
		},
	})

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "itemB", insufficient.ItemName)
	assert.Equal(t, 1, insufficient.Requested)
	assert.Equal(t, 0, insufficient.Available)

	// itemA was decremented inside the transaction before itemB failed;
	// the rollback must have restored it.
	assert.Equal(t, 10, stockOf(t, db, itemA.ID))
	assert.Equal(t, 0, stockOf(t, db, itemB.ID))
	assert.Zero(t, billCount(t, db))
}

func TestCreateBill_LastUnitRace(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	item := seedItem(t, db, "Last One", 49.99, 1)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBill(context.Background(), CreateBillInput{
				CustomerName: fmt.Sprintf("Racer %d", i),
				Items:        []BillLineInput{{ItemID: item.ID, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		lost++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 0, stockOf(t, db, item.ID))
	assert.EqualValues(t, 1, billCount(t, db))
}

func TestCreateBill_NotIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	item := seedItem(t, db, "Repeat", 10.00, 10)
	in := CreateBillInput{
		CustomerName: "Twice",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 2}},
	}

	first, err := svc.CreateBill(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.CreateBill(context.Background(), in)
	require.NoError(t, err)

	// Same input, two distinct bills, two decrements.
	assert.NotEqual(t, first.Bill.BillNumber, second.Bill.BillNumber)
	assert.EqualValues(t, 2, billCount(t, db))
	assert.Equal(t, 6, stockOf(t, db, item.ID))
}

func TestCreateBill_UntrackedItemSells(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	item := seedItem(t, db, "Consignment Scarf", 12.00, -1)

	res, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Walk-in",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 48.00, res.Bill.TotalAmount)
}

func TestCreateBill_UnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	_, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Ghost",
		Items:        []BillLineInput{{ItemID: 9999, Quantity: 1}},
	})

	var notFound *ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.EqualValues(t, 9999, notFound.ItemID)
	assert.Zero(t, billCount(t, db))
}

func TestCreateBill_RejectsEmptyAndZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	item := seedItem(t, db, "Zero", 5.00, 5)

	_, err := svc.CreateBill(context.Background(), CreateBillInput{CustomerName: "Empty"})
	assert.ErrorIs(t, err, ErrEmptyBill)

	_, err = svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Zero",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 5, stockOf(t, db, item.ID))
}

func TestCreateBill_CollisionRegeneratesNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	item := seedItem(t, db, "Collide", 9.99, 20)

	original := generateBillNumber
	t.Cleanup(func() { generateBillNumber = original })

	// First candidate always collides with the pre-existing bill; the
	// allocator must move on to the next one.
	calls := 0
	generateBillNumber = func(now time.Time) string {
		calls++
		if calls == 1 {
			return "BILL-20260831-TAKEN1"
		}
		return original(now)
	}

	taken := models.Bill{BillNumber: "BILL-20260831-TAKEN1", CustomerName: "Prior"}
	require.NoError(t, db.Create(&taken).Error)

	res, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "After",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, "BILL-20260831-TAKEN1", res.Bill.BillNumber)
	assert.Regexp(t, billNumberPattern, res.Bill.BillNumber)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestCreateBill_NumberSpaceExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	item := seedItem(t, db, "Exhaust", 9.99, 20)

	original := generateBillNumber
	t.Cleanup(func() { generateBillNumber = original })
	generateBillNumber = func(now time.Time) string { return "BILL-20260831-SAME00" }

	taken := models.Bill{BillNumber: "BILL-20260831-SAME00", CustomerName: "Prior"}
	require.NoError(t, db.Create(&taken).Error)

	_, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Unlucky",
		Items:        []BillLineInput{{ItemID: item.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrBillNumberExhausted)

	// The failed attempt must not have consumed stock.
	assert.Equal(t, 20, stockOf(t, db, item.ID))
}

func TestCreateBill_QueuesDeliveryWhenEmailPresent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	item := seedItem(t, db, "Email", 19.99, 5)

	res, err := svc.CreateBill(context.Background(), CreateBillInput{
		CustomerName:  "Asha Patel",
		CustomerEmail: "asha@example.com",
		Items:         []BillLineInput{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, res.EmailQueued)
}
