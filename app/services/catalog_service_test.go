package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
)

func TestCatalogService_CreateStartsTracked(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	item := models.ClothItem{
		Name:     "Linen Shirt",
		Category: models.CategoryShirt,
		Size:     models.SizeL,
		Price:    29.99,
		SKU:      "LS-001",
	}
	require.NoError(t, svc.Create(&item))
	require.NotZero(t, item.ID)

	assert.Equal(t, 0, stockOf(t, db, item.ID))
}

func TestCatalogService_RejectsUnknownEnums(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	err := svc.Create(&models.ClothItem{
		Name: "Bad", Category: "HAT", Size: models.SizeM, Price: 1, SKU: "B-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	err = svc.Create(&models.ClothItem{
		Name: "Bad", Category: models.CategoryShirt, Size: "HUGE", Price: 1, SKU: "B-2",
	})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestCatalogService_DuplicateSKU(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	first := models.ClothItem{
		Name: "One", Category: models.CategoryJeans, Size: models.SizeM, Price: 40, SKU: "DUP-1",
	}
	require.NoError(t, svc.Create(&first))

	second := models.ClothItem{
		Name: "Two", Category: models.CategoryJeans, Size: models.SizeL, Price: 45, SKU: "DUP-1",
	}
	err := svc.Create(&second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCatalogService_UpdateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seeded := seedItem(t, db, "Hoodie", 39.99, 5)

	updated, err := svc.Update(seeded.ID, func(it *models.ClothItem) {
		it.Price = 34.99
		it.Color = "Navy"
	})
	require.NoError(t, err)
	assert.Equal(t, 34.99, updated.Price)

	got, err := svc.Get(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Navy", got.Color)
	require.NotNil(t, got.Stock)
	assert.Equal(t, 5, got.Stock.Quantity)
}

func TestCatalogService_GetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.Get(404)

	var notFound *ItemNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCatalogService_DeleteProtectsBilledItems(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	billing := NewBillingService(db)

	sold := seedItem(t, db, "Sold Once", 20, 10)
	unsold := seedItem(t, db, "Never Sold", 20, 10)

	_, err := billing.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Buyer",
		Items:        []BillLineInput{{ItemID: sold.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = catalog.Delete(sold.ID)
	assert.ErrorIs(t, err, repositories.ErrItemHasBillingHistory)
	_, err = catalog.Get(sold.ID)
	assert.NoError(t, err)

	require.NoError(t, catalog.Delete(unsold.ID))
	_, err = catalog.Get(unsold.ID)
	var notFound *ItemNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCatalogService_ListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	shirt := models.ClothItem{Name: "Flannel Shirt", Category: models.CategoryShirt, Size: models.SizeM, Price: 25, SKU: "F-1"}
	jeans := models.ClothItem{Name: "Slim Jeans", Category: models.CategoryJeans, Size: models.SizeM, Price: 55, SKU: "J-1"}
	require.NoError(t, svc.Create(&shirt))
	require.NoError(t, svc.Create(&jeans))

	got, err := svc.List(repositories.ItemFilter{Category: string(models.CategoryJeans)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Slim Jeans", got[0].Name)

	got, err = svc.List(repositories.ItemFilter{Search: "flannel"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "F-1", got[0].SKU)
}
