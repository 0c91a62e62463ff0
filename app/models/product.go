package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// StringList is a JSON-encoded string set stored in a text column.
// It accepts either a JSON array (["S","M"]) or a JSON-encoded string
// containing an array ("[\"S\",\"M\"]"), matching what the storefront
// clients send.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return l.UnmarshalJSON(data)
}

// UnmarshalJSON handles both a plain array and a doubly-encoded array.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var nested string
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	if nested == "" {
		*l = nil
		return nil
	}
	if err := json.Unmarshal([]byte(nested), &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Product is a catalogue item. Quantity is the on-hand stock; order
// placement decrements it with a conditional update so it can never go
// negative.
type Product struct {
	gorm.Model
	Name            string     `gorm:"size:255;not null;index" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	Price           float64    `gorm:"not null;default:0" json:"price"`
	DiscountedPrice float64    `gorm:"not null;default:0" json:"discountedPrice"`
	Gender          string     `gorm:"size:50;index" json:"gender"`
	Sizes           StringList `gorm:"type:text" json:"sizes"`
	Colors          StringList `gorm:"type:text" json:"colors"`
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`
	Image           string     `gorm:"size:1024" json:"image"`
	CategoryID      uint       `gorm:"not null;index" json:"categoryId"`
	Category        *Category  `json:"category,omitempty"`
}

// UnitPrice returns the price a buyer actually pays: the discounted price
// when one is set, the list price otherwise.
func (p Product) UnitPrice() float64 {
	if p.DiscountedPrice > 0 {
		return p.DiscountedPrice
	}
	return p.Price
}
