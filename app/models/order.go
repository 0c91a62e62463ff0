package models

import "gorm.io/gorm"

// Order is a placed order with its delivery contact details.
// Total and the per-line unit prices are snapshots computed server-side at
// placement time.
type Order struct {
	gorm.Model
	UserID      uint        `gorm:"not null;index" json:"userId"`
	User        *User       `json:"user,omitempty"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Total       float64     `gorm:"not null" json:"total"`
	Status      string      `gorm:"size:50;not null;default:pending" json:"status"`
	NumberOne   string      `gorm:"size:50;not null" json:"numberOne"`
	NumberTwo   string      `gorm:"size:50" json:"numberTwo"`
	Address     string      `gorm:"size:1024;not null" json:"address"`
	City        string      `gorm:"size:255;not null" json:"city"`
	State       string      `gorm:"size:255;not null" json:"state"`
	Country     string      `gorm:"size:255;not null" json:"country"`
	PostCode    string      `gorm:"size:50;not null" json:"postCode"`
	Description string      `gorm:"type:text" json:"description"`
}

// OrderItem is one line of an order. UnitPrice is the product's effective
// price at placement time, frozen so later price edits don't rewrite
// history.
type OrderItem struct {
	gorm.Model
	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Size      string   `gorm:"size:50" json:"size"`
	Color     string   `gorm:"size:50" json:"color"`
	UnitPrice float64  `gorm:"not null" json:"unitPrice"`
}

// LineTotal returns UnitPrice × Quantity.
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
