package migrations

import (
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260201000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260201000001_create_cloth_items_table", &CreateClothItemsTable{})
	migration.Register("20260201000002_create_stock_levels_table", &CreateStockLevelsTable{})
	migration.Register("20260201000003_create_bills_tables", &CreateBillsTables{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: cloth_items --------

type CreateClothItemsTable struct{}

func (m *CreateClothItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ClothItem{})
}

func (m *CreateClothItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cloth_items")
}

// -------- 0003: stock_levels --------

type CreateStockLevelsTable struct{}

func (m *CreateStockLevelsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Stock{})
}

func (m *CreateStockLevelsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("stock_levels")
}

// -------- 0004: bills + bill_items --------

type CreateBillsTables struct{}

func (m *CreateBillsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Bill{}, &models.BillItem{})
}

func (m *CreateBillsTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("bill_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("bills")
}
