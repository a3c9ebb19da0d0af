package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"jewelry_store/internal/domain"
	"jewelry_store/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogKey is the Redis key holding the JSON-encoded product array
const CatalogKey = "PRODUCTS_STORAGE"

// FeaturedCount is the number of products shown on the home page
const FeaturedCount = 4

// UncategorizedLabel stands in for an empty category in listings
const UncategorizedLabel = "khác"

// Sort orders accepted by ProductFilter
const (
	SortNone = "none"
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	Search   string // Case-insensitive substring of the name
	Category string // Exact category, "all" or empty for any
	Sort     string // none, asc or desc by price
	Featured bool   // Keep only the first FeaturedCount products
}

// ProductPatch holds the fields of a partial product update
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Stock    *int
	Category *string
	Image    *string
}

// ProductStore persists the catalog and keeps a cached copy in Redis
type ProductStore struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

// NewProductStore creates a product store; ttl bounds the cached catalog's lifetime
func NewProductStore(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *ProductStore {
	return &ProductStore{db: db, rdb: rdb, ttl: ttl}
}

// All returns the whole catalog, newest first, served from cache when possible
func (s *ProductStore) All(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	found, err := utils.GetCache(ctx, s.rdb, CatalogKey, &products) // Try the cached catalog first
	switch {
	case found && err == nil:
		return products, nil // Cache hit
	case found:
		// Unreadable entry: drop it and reload
		logrus.WithFields(logrus.Fields{"key": CatalogKey, "error": err.Error()}).Warn("Corrupt catalog cache, reloading")
		_ = utils.DeleteCache(ctx, s.rdb, CatalogKey)
	case err != nil:
		logrus.WithFields(logrus.Fields{"key": CatalogKey, "error": err.Error()}).Warn("Catalog cache unavailable")
	}

	// Cache miss: load from the database, newest first
	products = []domain.Product{}
	if err := s.db.WithContext(ctx).Order("id desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	_ = utils.SetCache(ctx, s.rdb, CatalogKey, products, s.ttl) // Cache for the next reader
	return products, nil
}

// List filters and sorts the catalog
func (s *ProductStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	items := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && category != "all" && strings.ToLower(strings.TrimSpace(p.Category)) != category {
			continue
		}
		items = append(items, p)
	}

	switch f.Sort {
	case SortAsc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case SortDesc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	}

	// Featured keeps only the head of the list
	if f.Featured && len(items) > FeaturedCount {
		items = items[:FeaturedCount]
	}
	return items, nil
}

// Categories lists the distinct categories in catalog order
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	cats := []string{}
	for _, p := range all {
		c := p.Category
		if c == "" {
			c = UncategorizedLabel
		}
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats, nil
}

// Get reads a product straight from the database so stock is always live
func (s *ProductStore) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// Create adds a product to the catalog
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Image = strings.TrimSpace(p.Image)
	p.Category = strings.TrimSpace(p.Category)
	var absent []string
	if p.Name == "" {
		absent = append(absent, "name")
	}
	if p.Image == "" {
		absent = append(absent, "image")
	}
	if len(absent) > 0 {
		return missing(absent...)
	}
	if p.Price.IsNegative() || p.Stock < 0 {
		return ErrInvalidProduct
	}
	if p.Category == "" {
		p.Category = domain.DefaultCategory // Uncategorized products are jewelry
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Update applies a partial update to a product
func (s *ProductStore) Update(ctx context.Context, id uint, patch ProductPatch) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, missing("name")
		}
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Image != nil {
		p.Image = strings.TrimSpace(*patch.Image)
	}
	if p.Price.IsNegative() || p.Stock < 0 {
		return nil, ErrInvalidProduct
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.invalidate(ctx)
	return p, nil
}

// Delete removes a product. Cart items and orders referring to it are left alone.
func (s *ProductStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	s.invalidate(ctx)
	return nil
}

// ClearAll removes every product and returns how many were deleted
func (s *ProductStore) ClearAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Product{}) // GORM refuses unconditioned deletes
	if res.Error != nil {
		return 0, fmt.Errorf("clear products: %w", res.Error)
	}
	s.invalidate(ctx)
	return res.RowsAffected, nil
}

func (s *ProductStore) invalidate(ctx context.Context) {
	if err := utils.DeleteCache(ctx, s.rdb, CatalogKey); err != nil {
		logrus.WithFields(logrus.Fields{"key": CatalogKey, "error": err.Error()}).Warn("Failed to invalidate catalog cache")
	}
}
