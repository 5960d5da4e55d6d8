package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/services"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"gorm.io/gorm"
)

type StockController struct {
	inventory *services.InventoryService
	stock     *repositories.StockRepository
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{
		inventory: services.NewInventoryService(db),
		stock:     repositories.NewStockRepository(db),
	}
}

func (sc *StockController) Show(c *ctx.Context) {
	id, ok := sc.itemID(c)
	if !ok {
		return
	}
	stock, err := sc.stock.ForItem(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoStockRecord) || errors.Is(err, gorm.ErrRecordNotFound) {
			c.NotFound("no stock record for this item")
			return
		}
		c.Error(http.StatusInternalServerError, "could not load stock")
		return
	}
	c.Success(stock)
}

// Update sets an absolute quantity, creating the stock row if the item was
// previously untracked.
func (sc *StockController) Update(c *ctx.Context) {
	id, ok := sc.itemID(c)
	if !ok {
		return
	}

	var input struct {
		Quantity  int  `json:"quantity" validate:"gte=0"`
		Threshold *int `json:"low_stock_threshold"`
	}
	if !c.BindJSON(&input) {
		return
	}

	stock, err := sc.inventory.UpdateStock(id, input.Quantity, input.Threshold)
	if err != nil {
		sc.renderError(c, err)
		return
	}
	c.Success(stock)
}

// Adjust applies a signed delta (restock or shrinkage correction).
func (sc *StockController) Adjust(c *ctx.Context) {
	id, ok := sc.itemID(c)
	if !ok {
		return
	}

	var input struct {
		Delta int `json:"delta" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	stock, err := sc.inventory.AdjustStock(id, input.Delta)
	if err != nil {
		sc.renderError(c, err)
		return
	}
	c.Success(stock)
}

func (sc *StockController) LowStock(c *ctx.Context) {
	items, err := sc.inventory.LowStock()
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not list low stock items")
		return
	}
	c.Success(items)
}

func (sc *StockController) itemID(c *ctx.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "invalid item id")
		return 0, false
	}
	return uint(id), true
}

func (sc *StockController) renderError(c *ctx.Context, err error) {
	var notFound *services.ItemNotFoundError
	switch {
	case errors.As(err, &notFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrNegativeQuantity):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repositories.ErrNoStockRecord):
		c.NotFound("no stock record for this item")
	default:
		c.Error(http.StatusInternalServerError, "stock operation failed")
	}
}
