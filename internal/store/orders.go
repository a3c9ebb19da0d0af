package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelry_store/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput is the customer contact form submitted at checkout
type CheckoutInput struct {
	Name    string
	Email   string
	Address string
	Phone   string
	Payment string
}

// OrderFilter narrows an order listing; zero values mean no restriction
type OrderFilter struct {
	Status   string
	UserID   uint
	Page     int
	PageSize int
}

// OrderStore records checkouts and their admin-driven status
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order store
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// newOrderCode builds a human readable order code such as ORD-20251019-1A2B3C4D
func newOrderCode(now time.Time) string {
	return "ORD-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// Checkout turns the user's cart into a pending order and empties the cart
func (s *OrderStore) Checkout(ctx context.Context, userID uint, in CheckoutInput) (*domain.Order, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Payment = strings.TrimSpace(in.Payment)
	var absent []string
	fields := []struct{ name, value string }{
		{"name", in.Name}, {"email", in.Email}, {"address", in.Address}, {"phone", in.Phone}, {"payment", in.Payment},
	}
	for _, f := range fields {
		if f.value == "" {
			absent = append(absent, f.name)
		}
	}
	if len(absent) > 0 {
		return nil, missing(absent...)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, ErrInvalidEmail
	}

	var order domain.Order
	// Snapshot the cart into an order and empty it atomically; only tx is used inside
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []domain.CartItem
		if err := tx.Where("user_id = ?", userID).Order("added_at, product_id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart // Rolls back, nothing was written
		}
		now := time.Now()
		order = domain.Order{
			Code:         newOrderCode(now),
			UserID:       userID,
			CustomerName: in.Name,
			Email:        in.Email,
			Address:      in.Address,
			Phone:        in.Phone,
			Payment:      in.Payment,
			Items:        make([]domain.OrderItem, 0, len(items)),
			TotalPrice:   domain.CartTotal(items),
			Status:       domain.OrderPending,
			CreatedAt:    now,
		}
		for _, i := range items {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID: i.ProductID,
				Name:      i.Title,
				Price:     i.Price,
				Quantity:  i.Quantity,
				Image:     i.Image,
			})
		}
		if err := tx.Create(&order).Error; err != nil { // Creates the order items too
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error // Empty the cart
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, err
		}
		return nil, fmt.Errorf("checkout for user %d: %w", userID, err)
	}
	return &order, nil
}

// List returns orders newest first together with the unpaginated total
func (s *OrderStore) List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Order{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.UserID != 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	var total int64 // Total before pagination
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		query = query.Offset((page - 1) * f.PageSize).Limit(f.PageSize)
	}
	orders := []domain.Order{}
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// Get loads an order with its items
func (s *OrderStore) Get(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus moves a pending order to success or canceled
func (s *OrderStore) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Only pending orders move, and only to a final status
	if order.Status != domain.OrderPending || status == domain.OrderPending {
		return nil, ErrInvalidStatusTransition
	}
	// Guarded update: the WHERE clause re-checks pending at write time
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, domain.OrderPending).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Another admin got there first
		return nil, ErrInvalidStatusTransition
	}
	order.Status = status
	return order, nil
}

// Delete removes an order and its items
func (s *OrderStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items first, then the order
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete items of order %d: %w", id, err)
		}
		res := tx.Delete(&domain.Order{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

// Revenue sums the totals of orders in the given status
func Revenue(orders []domain.Order, status string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == status {
			total = total.Add(o.TotalPrice)
		}
	}
	return total
}
