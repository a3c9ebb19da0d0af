package store

import (
	"context"
	"testing"

	"jewelry_store/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductStore_Create(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	t.Run("requires name and image", func(t *testing.T) {
		err := s.products.Create(ctx, &domain.Product{Price: decimal.NewFromInt(10), Stock: 1})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		err := s.products.Create(ctx, &domain.Product{Name: "Ring", Image: "ring.jpg", Stock: -1})
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})

	t.Run("defaults category", func(t *testing.T) {
		p := &domain.Product{Name: "Ring", Image: "ring.jpg", Price: decimal.NewFromInt(100), Stock: 2}
		require.NoError(t, s.products.Create(ctx, p))
		assert.NotZero(t, p.ID)
		assert.Equal(t, domain.DefaultCategory, p.Category)
	})
}

func TestProductStore_List(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	seedProduct(t, s.products, "Gold Ring", 3000000, 5, "Nhẫn")
	seedProduct(t, s.products, "Silver Necklace", 1200000, 2, "Dây chuyền")
	seedProduct(t, s.products, "Diamond Ring", 9000000, 1, "Nhẫn")
	seedProduct(t, s.products, "Pearl Earrings", 800000, 7, "Bông tai")
	seedProduct(t, s.products, "Jade Bracelet", 2500000, 3, "Lắc")

	t.Run("newest first", func(t *testing.T) {
		items, err := s.products.List(ctx, ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jade Bracelet", "Pearl Earrings", "Diamond Ring", "Silver Necklace", "Gold Ring"}, names(items))
	})

	t.Run("search is case-insensitive and trimmed", func(t *testing.T) {
		items, err := s.products.List(ctx, ProductFilter{Search: "  RING "})
		require.NoError(t, err)
		assert.Equal(t, []string{"Diamond Ring", "Gold Ring"}, names(items))
	})

	t.Run("category filter", func(t *testing.T) {
		items, err := s.products.List(ctx, ProductFilter{Category: "nhẫn"})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = s.products.List(ctx, ProductFilter{Category: "all"})
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("sort by price", func(t *testing.T) {
		items, err := s.products.List(ctx, ProductFilter{Sort: SortAsc})
		require.NoError(t, err)
		assert.Equal(t, "Pearl Earrings", items[0].Name)
		assert.Equal(t, "Diamond Ring", items[4].Name)

		items, err = s.products.List(ctx, ProductFilter{Sort: SortDesc, Search: "ring"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Diamond Ring", "Gold Ring"}, names(items))
	})

	t.Run("featured keeps four", func(t *testing.T) {
		items, err := s.products.List(ctx, ProductFilter{Featured: true})
		require.NoError(t, err)
		assert.Len(t, items, FeaturedCount)
	})

	t.Run("categories in catalog order", func(t *testing.T) {
		cats, err := s.products.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lắc", "Bông tai", "Nhẫn", "Dây chuyền"}, cats)
	})
}

func TestProductStore_Cache(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	seedProduct(t, s.products, "Gold Ring", 3000000, 5, "Nhẫn")

	_, err := s.products.All(ctx)
	require.NoError(t, err)
	assert.True(t, s.mr.Exists(CatalogKey), "catalog should be cached after a read")

	t.Run("writes invalidate", func(t *testing.T) {
		seedProduct(t, s.products, "Pearl", 100, 1, "")
		assert.False(t, s.mr.Exists(CatalogKey))

		items, err := s.products.All(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("corrupt cache falls back to database", func(t *testing.T) {
		require.NoError(t, s.mr.Set(CatalogKey, "[{broken"))
		items, err := s.products.All(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("empty database yields empty collection", func(t *testing.T) {
		_, err := s.products.ClearAll(ctx)
		require.NoError(t, err)
		require.NoError(t, s.mr.Set(CatalogKey, "not json"))
		items, err := s.products.All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestProductStore_UpdateDelete(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	p := seedProduct(t, s.products, "Gold Ring", 3000000, 5, "Nhẫn")

	t.Run("partial update", func(t *testing.T) {
		price := decimal.NewFromInt(3500000)
		updated, err := s.products.Update(ctx, p.ID, ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(updated.Price))
		assert.Equal(t, "Gold Ring", updated.Name)
		assert.Equal(t, 5, updated.Stock)
	})

	t.Run("update missing product", func(t *testing.T) {
		stock := 1
		_, err := s.products.Update(ctx, 999, ProductPatch{Stock: &stock})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.products.Delete(ctx, p.ID))
		_, err := s.products.Get(ctx, p.ID)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.ErrorIs(t, s.products.Delete(ctx, p.ID), ErrProductNotFound)
	})

	t.Run("clear all", func(t *testing.T) {
		seedProduct(t, s.products, "A", 1, 1, "")
		seedProduct(t, s.products, "B", 1, 1, "")
		n, err := s.products.ClearAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}
