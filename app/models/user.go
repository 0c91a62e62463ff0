package models

import "gorm.io/gorm"

// User is an account able to log in and place orders.
type User struct {
	gorm.Model
	FirstName string `gorm:"size:255;not null" json:"firstName"`
	LastName  string `gorm:"size:255;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	IsAdmin   bool   `gorm:"not null;default:false" json:"isAdmin"`
}

// FullName returns "First Last" for emails and token claims.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
