package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to products created without a category
const DefaultCategory = "Trang sức"

// Product Model
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                     // Primary key
	Name      string          `gorm:"size:255;not null" json:"name"`            // Display name
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"` // Unit price in VND
	Stock     int             `gorm:"not null;default:0" json:"stock"`          // Remaining purchasable quantity
	Category  string          `gorm:"size:128;index" json:"category"`           // Category label
	Image     string          `gorm:"type:text" json:"image"`                   // Image URL or reference
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`         // Creation timestamp
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`         // Last update timestamp
}

// StockValue is the value of the remaining stock at the current price
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
