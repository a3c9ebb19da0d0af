package store

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartStore keeps one cart per user and checks quantities against live stock
type CartStore struct {
	db       *gorm.DB
	products *ProductStore
}

// NewCartStore creates a cart store that reads stock through products
func NewCartStore(db *gorm.DB, products *ProductStore) *CartStore {
	return &CartStore{db: db, products: products}
}

// Items returns the user's cart in the order items were added
func (s *CartStore) Items(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("added_at, product_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load cart of user %d: %w", userID, err)
	}
	return items, nil
}

// Add puts qty units of a product into the cart. The resulting quantity may never
// exceed the product's live stock; on violation the cart is left unchanged and a
// *StockLimitError is returned.
func (s *CartStore) Add(ctx context.Context, userID, productID uint, qty int) (*domain.CartItem, error) {
	if qty < 1 {
		qty = 1 // Default to a single unit
	}
	product, err := s.products.Get(ctx, productID) // Live stock, never the cached catalog
	if err != nil {
		return nil, err
	}

	var item domain.CartItem
	err = s.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		// Already in the cart: the combined quantity must fit in stock
		if item.Quantity+qty > product.Stock {
			return nil, &StockLimitError{ProductID: productID, Stock: product.Stock, InCart: item.Quantity}
		}
		item.Quantity += qty
		if err := s.db.WithContext(ctx).Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// New line: snapshot name, price and image from the product
		if qty > product.Stock {
			return nil, &StockLimitError{ProductID: productID, Stock: product.Stock}
		}
		item = domain.CartItem{
			UserID:    userID,
			ProductID: productID,
			Title:     product.Name,
			Price:     product.Price,
			Quantity:  qty,
			Image:     product.Image,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	return &item, nil
}

// Decrease lowers an item's quantity by one, removing it at one.
// It returns the remaining item, or nil when the item is gone or never existed.
func (s *CartStore) Decrease(ctx context.Context, userID, productID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Nothing to decrease
	}
	if err != nil {
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	if item.Quantity <= 1 {
		return nil, s.Remove(ctx, userID, productID) // Last unit removes the line
	}
	item.Quantity--
	if err := s.db.WithContext(ctx).Model(&item).Update("quantity", item.Quantity).Error; err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return &item, nil
}

// Remove deletes an item from the cart; removing an absent item is not an error
func (s *CartStore) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Clear empties the user's cart
func (s *CartStore) Clear(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart of user %d: %w", userID, err)
	}
	return nil
}

// Sync drops items whose product no longer exists and refreshes the price snapshot
// of the rest from the catalog.
func (s *CartStore) Sync(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	live := make(map[uint]domain.Product, len(catalog)) // Products by ID
	for _, p := range catalog {
		live[p.ID] = p
	}

	kept := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		p, ok := live[item.ProductID]
		if !ok {
			// Product was deleted from the catalog
			if err := s.Remove(ctx, userID, item.ProductID); err != nil {
				return nil, err
			}
			logrus.WithFields(logrus.Fields{"user_id": userID, "product_id": item.ProductID}).Info("Dropped vanished product from cart")
			continue
		}
		if !item.Price.Equal(p.Price) {
			item.Price = p.Price // Take the current catalog price
			if err := s.db.WithContext(ctx).Model(&item).Update("price", item.Price).Error; err != nil {
				return nil, fmt.Errorf("refresh cart price: %w", err)
			}
		}
		kept = append(kept, item)
	}
	return kept, nil
}
