// Package store holds the state stores behind the storefront and the back-office:
// products, carts, orders, users, login sessions, password resets and dashboard stats.
package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the stores. Callers match them with errors.Is.
var (
	ErrMissingFields           = errors.New("missing required fields")
	ErrInvalidEmail            = errors.New("email must contain '@'")
	ErrInvalidProduct          = errors.New("price and stock must not be negative")
	ErrProductNotFound         = errors.New("product not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("only pending orders can change status")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserExists              = errors.New("username or email already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidRole             = errors.New("unknown role")
	ErrSessionNotFound         = errors.New("session expired or replaced")
	ErrInvalidResetCode        = errors.New("invalid or expired reset code")
)

// StockLimitError is returned when a cart mutation would exceed the live stock
type StockLimitError struct {
	ProductID uint // Product being added
	Stock     int  // Live stock at check time
	InCart    int  // Quantity already in the cart
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("only %d left in stock for product %d", e.Stock, e.ProductID)
}

// missing wraps ErrMissingFields with the names of the absent fields
func missing(fields ...string) error {
	return fmt.Errorf("%w: %v", ErrMissingFields, fields)
}
