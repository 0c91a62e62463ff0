package models

import "gorm.io/gorm"

// Review is a customer review on a product. Rating is 1-5; aggregation is
// left to the clients.
type Review struct {
	gorm.Model
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	UserID    uint     `gorm:"not null;index" json:"userId"`
	Name      string   `gorm:"size:255" json:"name"`
	Rating    int      `gorm:"not null" json:"rating"`
	Text      string   `gorm:"type:text" json:"text"`
}
