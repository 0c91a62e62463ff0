package models

import "gorm.io/gorm"

// Category groups products ("Lab Coats", "Scrubs", ...).
// Deleting a category cascades to its products.
type Category struct {
	gorm.Model
	Name     string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Image    string    `gorm:"size:1024" json:"image"`
	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`
}
