package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
)

func newControllerDB(t *testing.T) *gorm.DB {
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

func stockedItem(t *testing.T, db *gorm.DB, sku string, price float64, quantity int) models.ClothItem {
	t.Helper()
	item := models.ClothItem{
		Name: sku, Category: models.CategoryShirt, Size: models.SizeM, Price: price, SKU: sku,
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&models.Stock{ItemID: item.ID, Quantity: quantity}).Error)
	return item
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestBillController_Create(t *testing.T) {
	db := newControllerDB(t)
	bc := NewBillController(db)
	handler := ctx.Wrap(bc.Create)

	itemA := stockedItem(t, db, "CTL-A", 15.99, 10)
	itemB := stockedItem(t, db, "CTL-B", 35.99, 5)

	rec := postJSON(t, handler, "/api/bills", map[string]any{
		"customer_name": "Asha Patel",
		"discount":      10,
		"tax_rate":      5,
		"items": []map[string]any{
			{"item_id": itemA.ID, "quantity": 2},
			{"item_id": itemB.ID, "quantity": 1},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"final_amount":64.23`)
	assert.Contains(t, rec.Body.String(), `"bill_number":"BILL-`)
}

func TestBillController_CreateConflictOnStock(t *testing.T) {
	db := newControllerDB(t)
	bc := NewBillController(db)
	handler := ctx.Wrap(bc.Create)

	item := stockedItem(t, db, "CTL-C", 20, 1)

	rec := postJSON(t, handler, "/api/bills", map[string]any{
		"customer_name": "Asha Patel",
		"items":         []map[string]any{{"item_id": item.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBillController_CreateValidation(t *testing.T) {
	db := newControllerDB(t)
	bc := NewBillController(db)
	handler := ctx.Wrap(bc.Create)

	// Missing customer name fails binding validation.
	rec := postJSON(t, handler, "/api/bills", map[string]any{
		"items": []map[string]any{{"item_id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// No items at all is rejected by the engine.
	rec = postJSON(t, handler, "/api/bills", map[string]any{
		"customer_name": "Empty",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Unknown item surfaces as 404.
	rec = postJSON(t, handler, "/api/bills", map[string]any{
		"customer_name": "Ghost",
		"items":         []map[string]any{{"item_id": 9999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillController_Index(t *testing.T) {
	db := newControllerDB(t)
	bc := NewBillController(db)

	item := stockedItem(t, db, "CTL-D", 10, 50)
	for i := 0; i < 3; i++ {
		rec := postJSON(t, ctx.Wrap(bc.Create), "/api/bills", map[string]any{
			"customer_name": fmt.Sprintf("Customer %d", i),
			"items":         []map[string]any{{"item_id": item.ID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bills?customer=Customer+1", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(bc.Index)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Customer 1")
	assert.NotContains(t, rec.Body.String(), "Customer 2")

	req = httptest.NewRequest(http.MethodGet, "/api/bills?date_from=bogus", nil)
	rec = httptest.NewRecorder()
	ctx.Wrap(bc.Index)(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
