package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/services"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"gorm.io/gorm"
)

// ItemInput is shared by create and update.
type ItemInput struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Category    string  `json:"category"    validate:"required"`
	Size        string  `json:"size"        validate:"required"`
	Color       string  `json:"color"       validate:"nullable,max=50"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Description string  `json:"description" validate:"nullable"`
	SKU         string  `json:"sku"         validate:"nullable,max=64"`
}

type ItemController struct {
	catalog *services.CatalogService
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{catalog: services.NewCatalogService(db)}
}

func (ic *ItemController) Index(c *ctx.Context) {
	items, err := ic.catalog.List(repositories.ItemFilter{
		Category: c.Query("category"),
		Size:     c.Query("size"),
		Search:   c.Query("search"),
	})
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not list items")
		return
	}
	c.Success(items)
}

func (ic *ItemController) Show(c *ctx.Context) {
	id, ok := ic.itemID(c)
	if !ok {
		return
	}
	item, err := ic.catalog.Get(id)
	if err != nil {
		ic.renderError(c, err)
		return
	}
	c.Success(item)
}

func (ic *ItemController) Create(c *ctx.Context) {
	var input ItemInput
	if !c.BindJSON(&input) {
		return
	}

	item := models.ClothItem{
		Name:        input.Name,
		Category:    models.Category(input.Category),
		Size:        models.Size(input.Size),
		Color:       input.Color,
		Price:       input.Price,
		Description: input.Description,
		SKU:         input.SKU,
	}
	if err := ic.catalog.Create(&item); err != nil {
		ic.renderError(c, err)
		return
	}
	c.Created(item)
}

func (ic *ItemController) Update(c *ctx.Context) {
	id, ok := ic.itemID(c)
	if !ok {
		return
	}

	var input ItemInput
	if !c.BindJSON(&input) {
		return
	}

	item, err := ic.catalog.Update(id, func(item *models.ClothItem) {
		item.Name = input.Name
		item.Category = models.Category(input.Category)
		item.Size = models.Size(input.Size)
		item.Color = input.Color
		item.Price = input.Price
		item.Description = input.Description
		item.SKU = input.SKU
	})
	if err != nil {
		ic.renderError(c, err)
		return
	}
	c.Success(item)
}

func (ic *ItemController) Delete(c *ctx.Context) {
	id, ok := ic.itemID(c)
	if !ok {
		return
	}
	if err := ic.catalog.Delete(id); err != nil {
		ic.renderError(c, err)
		return
	}
	c.Success(map[string]any{"deleted": id})
}

func (ic *ItemController) itemID(c *ctx.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "invalid item id")
		return 0, false
	}
	return uint(id), true
}

func (ic *ItemController) renderError(c *ctx.Context, err error) {
	var notFound *services.ItemNotFoundError
	switch {
	case errors.As(err, &notFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrInvalidCategory), errors.Is(err, services.ErrInvalidSize):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repositories.ErrItemHasBillingHistory):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.Error(http.StatusConflict, "an item with this SKU already exists")
	default:
		c.Error(http.StatusInternalServerError, "catalog operation failed")
	}
}
