package seeders

import (
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog fills the shop with a demo cloth catalog and opening stock.
// Idempotent: items are matched by SKU and skipped if present.
func SeedCatalog(db *gorm.DB) error {
	type seedItem struct {
		item models.ClothItem
		qty  int
	}

	items := []seedItem{
		{models.ClothItem{Name: "Classic White Shirt", Category: models.CategoryShirt, Size: models.SizeM, Color: "White", Price: 24.99, SKU: "SH-WHT-M-001"}, 50},
		{models.ClothItem{Name: "Classic White Shirt", Category: models.CategoryShirt, Size: models.SizeL, Color: "White", Price: 24.99, SKU: "SH-WHT-L-001"}, 40},
		{models.ClothItem{Name: "Oxford Blue Shirt", Category: models.CategoryShirt, Size: models.SizeM, Color: "Blue", Price: 29.99, SKU: "SH-BLU-M-002"}, 35},
		{models.ClothItem{Name: "Graphic Tee", Category: models.CategoryTShirt, Size: models.SizeS, Color: "Grey", Price: 14.99, SKU: "TS-GRY-S-001"}, 80},
		{models.ClothItem{Name: "Graphic Tee", Category: models.CategoryTShirt, Size: models.SizeM, Color: "Grey", Price: 14.99, SKU: "TS-GRY-M-001"}, 75},
		{models.ClothItem{Name: "Chino Trousers", Category: models.CategoryPants, Size: models.SizeXL, Color: "Khaki", Price: 39.99, SKU: "PT-KHA-XL-001"}, 20},
		{models.ClothItem{Name: "Formal Trousers", Category: models.CategoryPants, Size: models.SizeM, Color: "Charcoal", Price: 44.99, SKU: "PT-CHR-M-002"}, 22},
		{models.ClothItem{Name: "Slim Fit Jeans", Category: models.CategoryJeans, Size: models.SizeM, Color: "Indigo", Price: 49.99, SKU: "JN-IND-M-001"}, 30},
		{models.ClothItem{Name: "Slim Fit Jeans", Category: models.CategoryJeans, Size: models.SizeL, Color: "Indigo", Price: 49.99, SKU: "JN-IND-L-001"}, 25},
		{models.ClothItem{Name: "Denim Jacket", Category: models.CategoryJacket, Size: models.SizeL, Color: "Blue", Price: 79.99, SKU: "JK-BLU-L-001"}, 12},
		{models.ClothItem{Name: "Leather Jacket", Category: models.CategoryJacket, Size: models.SizeM, Color: "Black", Price: 199.99, SKU: "JK-BLK-M-002"}, 5},
		{models.ClothItem{Name: "Cable Knit Sweater", Category: models.CategorySweater, Size: models.SizeS, Color: "Cream", Price: 54.99, SKU: "SW-CRM-S-001"}, 18},
		{models.ClothItem{Name: "Cable Knit Sweater", Category: models.CategorySweater, Size: models.SizeXXL, Color: "Cream", Price: 54.99, SKU: "SW-CRM-XXL-001"}, 3},
	}

	for _, s := range items {
		var existing models.ClothItem
		err := db.Where("sku = ?", s.item.SKU).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		item := s.item
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		stock := models.Stock{ItemID: item.ID, Quantity: s.qty, LowStockThreshold: 10}
		if err := db.Create(&stock).Error; err != nil {
			return err
		}
	}
	return nil
}
