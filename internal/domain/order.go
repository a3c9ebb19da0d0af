package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderPending  = "pending"  // Placed, awaiting admin action
	OrderSuccess  = "success"  // Completed by admin
	OrderCanceled = "canceled" // Canceled by admin
)

// ValidOrderStatus reports whether status is one of the known order statuses
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderSuccess, OrderCanceled:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                           // Primary key
	Code         string          `gorm:"size:32;uniqueIndex;not null" json:"code"`       // Human readable code (ORD-...)
	UserID       uint            `gorm:"index" json:"user_id"`                           // Customer account
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`         // Contact name
	Email        string          `gorm:"size:128;not null" json:"email"`                 // Contact email
	Address      string          `gorm:"size:512;not null" json:"address"`               // Shipping address
	Phone        string          `gorm:"size:32;not null" json:"phone"`                  // Contact phone
	Payment      string          `gorm:"size:32" json:"payment"`                         // Chosen payment method
	Items        []OrderItem     `gorm:"constraint:OnDelete:CASCADE;" json:"items"`      // Snapshot of purchased items
	TotalPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"` // Sum of item subtotals
	Status       string          `gorm:"size:16;index;not null" json:"status"`           // pending, success or canceled
	CreatedAt    time.Time       `gorm:"autoCreateTime;index" json:"created_at"`         // Creation timestamp
}

// OrderItem Model
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`                      // Primary key
	OrderID   uint            `gorm:"index;not null" json:"-"`                  // Foreign key to Order
	ProductID uint            `json:"id"`                                       // Product at checkout time
	Name      string          `gorm:"size:255;not null" json:"name"`            // Product name snapshot
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"` // Price snapshot
	Quantity  int             `gorm:"not null" json:"quantity"`                 // Purchased quantity
	Image     string          `gorm:"type:text" json:"image"`                   // Image snapshot
}
