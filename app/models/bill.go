package models

import "gorm.io/gorm"

// Bill is an immutable record of a completed sale. It is created exactly
// once by the billing engine, with the computed totals persisted as part of
// that creation, and never mutated afterwards.
type Bill struct {
	gorm.Model
	BillNumber    string  `gorm:"size:50;uniqueIndex;not null" json:"bill_number"`
	CustomerName  string  `gorm:"size:200;not null"            json:"customer_name"`
	CustomerPhone string  `gorm:"size:20"                      json:"customer_phone"`
	CustomerEmail string  `gorm:"size:255"                     json:"customer_email"`
	TotalAmount   float64 `gorm:"type:decimal(10,2);default:0" json:"total_amount"`
	Discount      float64 `gorm:"type:decimal(5,2);default:0"  json:"discount"`
	TaxRate       float64 `gorm:"type:decimal(5,2);default:0"  json:"tax_rate"`
	FinalAmount   float64 `gorm:"type:decimal(10,2);default:0" json:"final_amount"`
	Notes         string  `gorm:"type:text"                    json:"notes"`

	// Items are owned by the bill: deleting a bill cascades to its lines.
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Bill) TableName() string { return "bills" }

// BillItem is one line of a bill. The unit price is captured at time of
// sale, so later catalog price changes never rewrite billing history, and
// the referenced catalog item cannot be deleted while the line exists.
type BillItem struct {
	gorm.Model
	BillID    uint    `gorm:"not null;index"               json:"bill_id"`
	ItemID    uint    `gorm:"not null;index"               json:"item_id"`
	Quantity  int     `gorm:"not null"                     json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null"  json:"unit_price"`
	Subtotal  float64 `gorm:"type:decimal(10,2);not null"  json:"subtotal"`

	// Non-owning reference: RESTRICT, not CASCADE.
	Item *ClothItem `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT" json:"item,omitempty"`
}

func (BillItem) TableName() string { return "bill_items" }

// BeforeSave recomputes the subtotal from quantity × unit price, so it can
// never be set independently no matter which code path persists the line.
func (bi *BillItem) BeforeSave(_ *gorm.DB) error {
	bi.Subtotal = float64(bi.Quantity) * bi.UnitPrice
	return nil
}
