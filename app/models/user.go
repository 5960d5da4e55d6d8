package models

import "gorm.io/gorm"

// User is a shop operator account (admin or cashier).
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:cashier" json:"role"`
}
