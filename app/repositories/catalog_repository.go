package repositories

import (
	"errors"
	"fmt"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"gorm.io/gorm"
)

// ErrItemHasBillingHistory is returned when deleting a catalog item that is
// referenced by bill lines. History must stay intact, so the delete is
// rejected rather than cascaded.
var ErrItemHasBillingHistory = errors.New("catalog: item has billing history and cannot be deleted")

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	Category string
	Size     string
	Search   string // matches name, SKU, or description
}

// CatalogRepository handles database operations for ClothItem.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// List returns catalog items matching the filter, newest first, with their
// stock rows preloaded.
func (r *CatalogRepository) List(f ItemFilter) ([]models.ClothItem, error) {
	q := r.db.Model(&models.ClothItem{}).Preload("Stock").Order("created_at desc")

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR sku LIKE ? OR description LIKE ?", like, like, like)
	}

	var items []models.ClothItem
	err := q.Find(&items).Error
	return items, err
}

// FindByID loads one item with its stock row.
func (r *CatalogRepository) FindByID(id uint) (models.ClothItem, error) {
	var item models.ClothItem
	err := r.db.Preload("Stock").First(&item, id).Error
	return item, err
}

// Create persists a new item and its zero-quantity stock row in one
// transaction, matching the catalog invariant that every item created
// through the API starts tracked at quantity 0.
func (r *CatalogRepository) Create(item *models.ClothItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return tx.Create(&models.Stock{ItemID: item.ID}).Error
	})
}

// Update persists changes to an existing item.
func (r *CatalogRepository) Update(item *models.ClothItem) error {
	return r.db.Save(item).Error
}

// Delete removes an item and its stock row. Items referenced by bill lines
// are protected: the delete fails with ErrItemHasBillingHistory.
func (r *CatalogRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.BillItem{}).Where("item_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("catalog: count bill references: %w", err)
		}
		if refs > 0 {
			return ErrItemHasBillingHistory
		}

		if err := tx.Where("item_id = ?", id).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ClothItem{}, id).Error
	})
}

// LowStock returns items whose quantity is at or below their threshold.
func (r *CatalogRepository) LowStock() ([]models.ClothItem, error) {
	var items []models.ClothItem
	err := r.db.Model(&models.ClothItem{}).
		Joins("JOIN stock_levels ON stock_levels.item_id = cloth_items.id").
		Where("stock_levels.quantity <= stock_levels.low_stock_threshold").
		Where("stock_levels.deleted_at IS NULL").
		Preload("Stock").
		Find(&items).Error
	return items, err
}
