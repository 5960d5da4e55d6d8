package services

import (
	"errors"
	"fmt"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/event"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/metrics"
	"gorm.io/gorm"
)

// InventoryService covers everything stock related outside the order
// transaction: absolute updates, relative adjustments, and low stock
// reporting.
type InventoryService struct {
	catalog *repositories.CatalogRepository
	stock   *repositories.StockRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		catalog: repositories.NewCatalogRepository(db),
		stock:   repositories.NewStockRepository(db),
	}
}

// ErrNegativeQuantity rejects an absolute stock update below zero.
var ErrNegativeQuantity = errors.New("inventory: quantity cannot be negative")

// UpdateStock sets an item's on-hand quantity to an absolute value,
// creating the stock row for a previously untracked item. threshold is
// optional and left unchanged when nil.
func (s *InventoryService) UpdateStock(itemID uint, quantity int, threshold *int) (models.Stock, error) {
	if quantity < 0 {
		return models.Stock{}, ErrNegativeQuantity
	}
	if _, err := s.catalog.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Stock{}, &ItemNotFoundError{ItemID: itemID}
		}
		return models.Stock{}, err
	}

	stock, err := s.stock.SetQuantity(itemID, quantity, threshold)
	if err != nil {
		return models.Stock{}, fmt.Errorf("inventory: update stock: %w", err)
	}

	event.FireAsync(event.StockAdjusted, stock)
	if stock.IsLowStock() {
		event.FireAsync(event.StockLow, stock)
	}
	return stock, nil
}

// AdjustStock applies a signed delta to an item's quantity. Deltas that
// would take the count below zero clamp to zero rather than failing, so a
// physical recount can always be reconciled.
func (s *InventoryService) AdjustStock(itemID uint, delta int) (models.Stock, error) {
	if _, err := s.catalog.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Stock{}, &ItemNotFoundError{ItemID: itemID}
		}
		return models.Stock{}, err
	}

	stock, err := s.stock.Adjust(itemID, delta)
	if err != nil {
		if errors.Is(err, repositories.ErrNoStockRecord) {
			return models.Stock{}, err
		}
		return models.Stock{}, fmt.Errorf("inventory: adjust stock: %w", err)
	}

	event.FireAsync(event.StockAdjusted, stock)
	if stock.IsLowStock() {
		event.FireAsync(event.StockLow, stock)
	}
	return stock, nil
}

// LowStock lists catalog items at or below their low stock threshold and
// refreshes the gauge as a side effect.
func (s *InventoryService) LowStock() ([]models.ClothItem, error) {
	items, err := s.catalog.LowStock()
	if err != nil {
		return nil, err
	}
	metrics.LowStockItems.Set(float64(len(items)))
	return items, nil
}
