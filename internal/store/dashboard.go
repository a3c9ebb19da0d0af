package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"jewelry_store/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Dashboard list sizes
const (
	topStockSize     = 8
	lowStockSize     = 6
	topValueSize     = 6
	revenueWeeks     = 8
	otherCategoryKey = "Khác"
)

// CategoryCount is the number of products in a category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"value"`
}

// StockEntry is a product with its remaining stock
type StockEntry struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// ValueEntry is a product with the value of its remaining stock
type ValueEntry struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
	Total decimal.Decimal `json:"total"`
}

// WeekRevenue is the completed-order revenue of one ISO week
type WeekRevenue struct {
	Week    string          `json:"week"`
	Start   time.Time       `json:"start"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStats is everything the back-office home page shows
type DashboardStats struct {
	TotalProducts  int              `json:"total_products"`
	TotalStock     int              `json:"total_stock"`
	TotalValue     decimal.Decimal  `json:"total_value"`
	Categories     []CategoryCount  `json:"categories"`
	TopStock       []StockEntry     `json:"top_stock"`
	LowStock       []StockEntry     `json:"low_stock"`
	TopValue       []ValueEntry     `json:"top_value"`
	TotalUsers     int64            `json:"total_users"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	Revenue        decimal.Decimal  `json:"revenue"`
	WeeklyRevenue  []WeekRevenue    `json:"weekly_revenue"`
}

// DashboardStore aggregates catalog, user and order figures
type DashboardStore struct {
	db                *gorm.DB
	products          *ProductStore
	users             *UserStore
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardStore creates a dashboard store; products at or below lowStockThreshold are flagged
func NewDashboardStore(db *gorm.DB, products *ProductStore, users *UserStore, lowStockThreshold int) *DashboardStore {
	return &DashboardStore{db: db, products: products, users: users, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// Stats loads products, orders and the user count concurrently and aggregates them
func (s *DashboardStore) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		products   []domain.Product
		orders     []domain.Order
		totalUsers int64
	)
	g, gctx := errgroup.WithContext(ctx) // Load the three sources concurrently
	g.Go(func() error {
		var err error
		products, err = s.products.All(gctx)
		return err
	})
	g.Go(func() error {
		// Items are not needed for the figures
		if err := s.db.WithContext(gctx).Select("id", "status", "total_price", "created_at").Find(&orders).Error; err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totalUsers, err = s.users.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:  len(products),
		TotalValue:     decimal.Zero,
		TotalUsers:     totalUsers,
		OrdersByStatus: map[string]int64{domain.OrderPending: 0, domain.OrderSuccess: 0, domain.OrderCanceled: 0},
		Revenue:        Revenue(orders, domain.OrderSuccess),
	}
	s.aggregateProducts(stats, products)
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
	}
	stats.WeeklyRevenue = weeklyRevenue(orders, s.now(), revenueWeeks)
	return stats, nil
}

func (s *DashboardStore) aggregateProducts(stats *DashboardStats, products []domain.Product) {
	counts := map[string]int{}
	stats.Categories = []CategoryCount{}
	for _, p := range products {
		stats.TotalStock += p.Stock
		stats.TotalValue = stats.TotalValue.Add(p.StockValue())
		key := p.Category
		if key == "" {
			key = otherCategoryKey // Uncategorized bucket
		}
		if _, ok := counts[key]; !ok {
			// Keep categories in first-seen order
			stats.Categories = append(stats.Categories, CategoryCount{Category: key})
		}
		counts[key]++
	}
	for i := range stats.Categories {
		stats.Categories[i].Count = counts[stats.Categories[i].Category]
	}

	byStockDesc := slices.Clone(products)
	slices.SortStableFunc(byStockDesc, func(a, b domain.Product) int { return b.Stock - a.Stock })
	stats.TopStock = stockEntries(byStockDesc, topStockSize)

	low := []domain.Product{}
	for _, p := range products {
		if p.Stock <= s.lowStockThreshold {
			low = append(low, p)
		}
	}
	slices.SortStableFunc(low, func(a, b domain.Product) int { return a.Stock - b.Stock })
	stats.LowStock = stockEntries(low, lowStockSize)

	values := make([]ValueEntry, 0, len(products))
	for _, p := range products {
		values = append(values, ValueEntry{ID: p.ID, Name: p.Name, Stock: p.Stock, Price: p.Price, Total: p.StockValue()})
	}
	slices.SortStableFunc(values, func(a, b ValueEntry) int { return b.Total.Cmp(a.Total) })
	if len(values) > topValueSize {
		values = values[:topValueSize]
	}
	stats.TopValue = values
}

func stockEntries(products []domain.Product, limit int) []StockEntry {
	out := make([]StockEntry, 0, min(len(products), limit))
	for _, p := range products {
		if len(out) == limit {
			break
		}
		out = append(out, StockEntry{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return out
}

// startOfWeek returns Monday 00:00 of the week containing t
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weeklyRevenue sums successful orders per week for the last n weeks, oldest first
func weeklyRevenue(orders []domain.Order, now time.Time, n int) []WeekRevenue {
	current := startOfWeek(now)
	out := make([]WeekRevenue, n)
	for i := range n {
		start := current.AddDate(0, 0, -7*(n-1-i))
		_, week := start.ISOWeek()
		out[i] = WeekRevenue{Week: fmt.Sprintf("W%d", week), Start: start, Revenue: decimal.Zero}
	}
	first := out[0].Start
	end := current.AddDate(0, 0, 7)
	for _, o := range orders {
		if o.Status != domain.OrderSuccess {
			continue
		}
		created := o.CreatedAt.In(now.Location())
		if created.Before(first) || !created.Before(end) {
			continue
		}
		// Walk back to the week the order falls in
		for i := n - 1; i >= 0; i-- {
			if !created.Before(out[i].Start) {
				out[i].Revenue = out[i].Revenue.Add(o.TotalPrice)
				break
			}
		}
	}
	return out
}
