package repositories

import (
	"errors"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"gorm.io/gorm"
)

// ErrNoStockRecord is returned when an item has no stock row.
var ErrNoStockRecord = errors.New("stock: no record for item")

// StockRepository handles database operations for Stock.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// ForItem loads the stock row for one catalog item.
func (r *StockRepository) ForItem(itemID uint) (models.Stock, error) {
	var stock models.Stock
	err := r.db.Where("item_id = ?", itemID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stock, ErrNoStockRecord
	}
	return stock, err
}

// SetQuantity overwrites the absolute quantity (and optionally the
// threshold) for an item. Used by the stock-take flow.
func (r *StockRepository) SetQuantity(itemID uint, quantity int, threshold *int) (models.Stock, error) {
	var stock models.Stock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).First(&stock).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoStockRecord
			}
			return err
		}

		stock.Quantity = quantity
		if threshold != nil {
			stock.LowStockThreshold = *threshold
		}
		return tx.Save(&stock).Error
	})

	return stock, err
}

// Adjust applies a delta to the quantity, flooring at zero (a restock uses a
// positive delta, a shrinkage correction a negative one). The update is a
// single conditional statement so concurrent adjustments cannot interleave a
// stale read.
func (r *StockRepository) Adjust(itemID uint, delta int) (models.Stock, error) {
	var stock models.Stock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Stock{}).
			Where("item_id = ?", itemID).
			UpdateColumn("quantity", gorm.Expr(
				"CASE WHEN quantity + ? < 0 THEN 0 ELSE quantity + ? END", delta, delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoStockRecord
		}
		return tx.Where("item_id = ?", itemID).First(&stock).Error
	})

	return stock, err
}

// DecrementIfSufficient atomically decrements the stock row iff enough units
// remain. It must run inside the caller's transaction (the billing engine
// passes its tx) so a later line failure rolls the decrement back.
//
// Returns (false, nil) when the row exists but holds fewer than qty units —
// the conditional UPDATE is what closes the check-then-act race between
// concurrent orders. ErrNoStockRecord means the item is untracked; the
// billing engine treats that as sellable.
func DecrementIfSufficient(tx *gorm.DB, itemID uint, qty int) (bool, error) {
	res := tx.Model(&models.Stock{}).
		Where("item_id = ? AND quantity >= ?", itemID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// No row matched: either the stock is insufficient or untracked.
	var count int64
	if err := tx.Model(&models.Stock{}).Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNoStockRecord
	}
	return false, nil
}
