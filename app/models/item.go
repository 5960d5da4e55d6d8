package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the cloth item category enum.
type Category string

const (
	CategoryShirt   Category = "SHIRT"
	CategoryTShirt  Category = "TSHIRT"
	CategoryPants   Category = "PANTS"
	CategoryJeans   Category = "JEANS"
	CategoryJacket  Category = "JACKET"
	CategorySweater Category = "SWEATER"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryShirt, CategoryTShirt, CategoryPants,
		CategoryJeans, CategoryJacket, CategorySweater,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Size is the garment size enum.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every valid size, smallest first.
func Sizes() []Size {
	return []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}
}

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	for _, known := range Sizes() {
		if s == known {
			return true
		}
	}
	return false
}

// ClothItem is a sellable product variant in the catalog.
// It is read-only from the billing engine's perspective: order creation
// references items but never mutates them.
type ClothItem struct {
	gorm.Model
	Name        string   `gorm:"size:200;not null;index"        json:"name"`
	Category    Category `gorm:"size:20;not null;index:idx_cat_size" json:"category"`
	Size        Size     `gorm:"size:5;not null;index:idx_cat_size"  json:"size"`
	Color       string   `gorm:"size:50"                         json:"color"`
	Price       float64  `gorm:"type:decimal(10,2);not null"     json:"price"`
	Description string   `gorm:"type:text"                       json:"description"`
	SKU         string   `gorm:"size:100;uniqueIndex;not null"   json:"sku"`

	Stock *Stock `gorm:"foreignKey:ItemID" json:"stock,omitempty"`
}

func (ClothItem) TableName() string { return "cloth_items" }

// Stock tracks the on-hand quantity for one catalog item.
// Mutated only by the billing engine (decrement) and the restock
// operations; both run as exclusive-access updates on the row.
type Stock struct {
	gorm.Model
	ItemID            uint      `gorm:"uniqueIndex;not null" json:"item_id"`
	Quantity          int       `gorm:"not null;default:0"   json:"quantity"`
	LowStockThreshold int       `gorm:"not null;default:10"  json:"low_stock_threshold"`
	LastRestocked     time.Time `gorm:"autoUpdateTime"       json:"last_restocked"`
}

func (Stock) TableName() string { return "stock_levels" }

// IsLowStock reports whether the quantity is at or below the threshold.
func (s *Stock) IsLowStock() bool { return s.Quantity <= s.LowStockThreshold }

// IsOutOfStock reports whether nothing is left on hand.
func (s *Stock) IsOutOfStock() bool { return s.Quantity == 0 }
