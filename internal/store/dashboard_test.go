package store

import (
	"context"
	"testing"
	"time"

	"jewelry_store/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStore_Stats(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	ring := seedProduct(t, s.products, "Gold Ring", 3000000, 5, "Nhẫn")
	seedProduct(t, s.products, "Pearl", 500000, 1, "Bông tai")
	seedProduct(t, s.products, "Diamond Ring", 9000000, 2, "Nhẫn")
	blank := seedProduct(t, s.products, "Charm", 100000, 20, "")
	empty := ""
	_, err := s.products.Update(ctx, blank.ID, ProductPatch{Category: &empty})
	require.NoError(t, err)

	_, err = s.users.Register(ctx, "lan", "lan@example.com", "x")
	require.NoError(t, err)

	done := placeOrder(t, s, 1, ring, 2)
	_, err = s.orders.UpdateStatus(ctx, done.ID, domain.OrderSuccess)
	require.NoError(t, err)
	placeOrder(t, s, 1, ring, 1)

	dash := NewDashboardStore(s.db, s.products, s.users, 3)
	stats, err := dash.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 28, stats.TotalStock)
	// 5*3.000.000 + 1*500.000 + 2*9.000.000 + 20*100.000
	assert.True(t, decimal.NewFromInt(35500000).Equal(stats.TotalValue), stats.TotalValue.String())
	assert.Equal(t, int64(1), stats.TotalUsers)

	assert.Equal(t, []CategoryCount{{"Khác", 1}, {"Nhẫn", 2}, {"Bông tai", 1}}, stats.Categories)

	require.NotEmpty(t, stats.TopStock)
	assert.Equal(t, "Charm", stats.TopStock[0].Name)
	assert.Equal(t, []StockEntry{{ID: 2, Name: "Pearl", Stock: 1}, {ID: 3, Name: "Diamond Ring", Stock: 2}}, stats.LowStock)
	assert.Equal(t, "Diamond Ring", stats.TopValue[0].Name)

	assert.Equal(t, int64(1), stats.OrdersByStatus[domain.OrderSuccess])
	assert.Equal(t, int64(1), stats.OrdersByStatus[domain.OrderPending])
	assert.Equal(t, int64(0), stats.OrdersByStatus[domain.OrderCanceled])
	assert.True(t, decimal.NewFromInt(6000000).Equal(stats.Revenue))

	require.Len(t, stats.WeeklyRevenue, 8)
	assert.True(t, decimal.NewFromInt(6000000).Equal(stats.WeeklyRevenue[7].Revenue))
}

func TestWeeklyRevenue(t *testing.T) {
	now := time.Date(2025, time.October, 16, 15, 0, 0, 0, time.UTC) // Thursday, ISO week 42
	orders := []domain.Order{
		{Status: domain.OrderSuccess, TotalPrice: decimal.NewFromInt(100), CreatedAt: time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)},
		{Status: domain.OrderSuccess, TotalPrice: decimal.NewFromInt(50), CreatedAt: time.Date(2025, time.October, 12, 23, 59, 0, 0, time.UTC)},
		{Status: domain.OrderCanceled, TotalPrice: decimal.NewFromInt(999), CreatedAt: now},
		{Status: domain.OrderSuccess, TotalPrice: decimal.NewFromInt(7), CreatedAt: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)},
	}

	weeks := weeklyRevenue(orders, now, 8)
	require.Len(t, weeks, 8)
	assert.Equal(t, "W42", weeks[7].Week)
	assert.Equal(t, "W35", weeks[0].Week)
	assert.True(t, decimal.NewFromInt(100).Equal(weeks[7].Revenue))
	assert.True(t, decimal.NewFromInt(50).Equal(weeks[6].Revenue))
	for _, w := range weeks[:6] {
		assert.True(t, w.Revenue.IsZero(), w.Week)
	}
}
