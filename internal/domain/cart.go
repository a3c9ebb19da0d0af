package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem Model. One row per (user, product); the price is a snapshot taken when the
// item was first added and only refreshed by an explicit sync.
type CartItem struct {
	UserID    uint            `gorm:"primaryKey;autoIncrement:false" json:"-"`  // Owner of the cart
	ProductID uint            `gorm:"primaryKey;autoIncrement:false" json:"id"` // Mirrors Product.ID
	Title     string          `gorm:"size:255;not null" json:"title"`           // Product name at add time
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"` // Price snapshot
	Quantity  int             `gorm:"not null" json:"quantity"`                 // Always >= 1
	Image     string          `gorm:"type:text" json:"image,omitempty"`         // Optional image
	AddedAt   time.Time       `gorm:"autoCreateTime" json:"-"`                  // Keeps insertion order
}

// Subtotal is price times quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotal sums the subtotals of all items
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Subtotal())
	}
	return total
}
