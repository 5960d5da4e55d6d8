package seeders

import (
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers creates a demo admin and cashier. Skipped when the email is
// already taken.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@clothshop.local", "admin12345", "admin"},
		{"Front Desk", "cashier@clothshop.local", "cashier12345", "cashier"},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("email = ?", u.email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := models.User{Name: u.name, Email: u.email, Password: hash, Role: u.role}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
