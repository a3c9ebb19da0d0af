package store

import (
	"context"
	"testing"

	"jewelry_store/internal/db"
	"jewelry_store/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a migrated in-memory SQLite database on a single connection
func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every connection to :memory: is a separate database
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

type testStores struct {
	db       *gorm.DB
	rdb      *redis.Client
	mr       *miniredis.Miniredis
	products *ProductStore
	cart     *CartStore
	orders   *OrderStore
	users    *UserStore
}

func setupStores(t *testing.T) *testStores {
	gdb := setupTestDB(t)
	rdb, mr := setupTestRedis(t)
	products := NewProductStore(gdb, rdb, 0)
	return &testStores{
		db:       gdb,
		rdb:      rdb,
		mr:       mr,
		products: products,
		cart:     NewCartStore(gdb, products),
		orders:   NewOrderStore(gdb),
		users:    NewUserStore(gdb),
	}
}

func seedProduct(t *testing.T, s *ProductStore, name string, price int64, stock int, category string) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Price: decimal.NewFromInt(price), Stock: stock, Category: category, Image: "/images/" + name + ".jpg"}
	require.NoError(t, s.Create(context.Background(), p))
	return p
}
