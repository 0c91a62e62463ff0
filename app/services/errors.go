package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP envelopes with errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
