package models

import "gorm.io/gorm"

// Image is an offer-carousel entry. Path is the storage key on the active
// disk; URL is the public address served to clients.
type Image struct {
	gorm.Model
	Name string `gorm:"size:255" json:"name"`
	Path string `gorm:"size:1024;not null" json:"-"`
	URL  string `gorm:"size:1024;not null" json:"url"`
}
