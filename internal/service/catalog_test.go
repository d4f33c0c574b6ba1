package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_backend/internal/models"
)

func newTestCatalogService(t *testing.T) (*CatalogService, *fakeIndex, *recordingPublisher) {
	t.Helper()
	idx := &fakeIndex{}
	pub := &recordingPublisher{}
	return &CatalogService{Products: newTestRepo(t), Index: idx, Events: pub}, idx, pub
}

func addProducts(t *testing.T, svc *CatalogService, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := svc.AddProduct(context.Background(), ProductInput{
			Name:     fmt.Sprintf("p%d", i),
			Image:    "img",
			Category: "women",
			NewPrice: 10,
			OldPrice: 20,
		})
		require.NoError(t, err)
	}
}

func ids(items []models.Product) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ProductID)
	}
	return out
}

func TestCatalogService_AddProductSequentialIDs(t *testing.T) {
	svc, idx, pub := newTestCatalogService(t)
	ctx := context.Background()

	first, err := svc.AddProduct(ctx, ProductInput{Name: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ProductID)
	assert.True(t, first.Available)

	deleted, err := svc.RemoveProduct(ctx, first.ProductID)
	require.NoError(t, err)
	assert.True(t, deleted)

	second, err := svc.AddProduct(ctx, ProductInput{Name: "second"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ProductID)

	assert.Equal(t, []int{1, 2}, idx.indexed)
	assert.Equal(t, []int{1}, idx.deleted)
	assert.Equal(t, []string{"product_created", "product_deleted", "product_created"}, pub.types())
}

func TestCatalogService_NewCollections(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  []int
	}{
		{name: "empty", count: 0, want: []int{}},
		{name: "one product", count: 1, want: []int{}},
		{name: "two products", count: 2, want: []int{2}},
		{name: "nine products", count: 9, want: []int{2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "twelve products", count: 12, want: []int{5, 6, 7, 8, 9, 10, 11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestCatalogService(t)
			addProducts(t, svc, tt.count)

			items, err := svc.NewCollections(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(items))
		})
	}
}

func TestCatalogService_PopularInWomen(t *testing.T) {
	svc, _, _ := newTestCatalogService(t)
	ctx := context.Background()

	items, err := svc.PopularInWomen(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	addProducts(t, svc, 6)
	items, err = svc.PopularInWomen(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(items))
}

func TestCatalogService_RemoveMissingProduct(t *testing.T) {
	svc, idx, pub := newTestCatalogService(t)

	deleted, err := svc.RemoveProduct(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, idx.deleted)
	assert.Empty(t, pub.types())
}

func TestCatalogService_AddProductValidation(t *testing.T) {
	svc, _, _ := newTestCatalogService(t)
	_, err := svc.AddProduct(context.Background(), ProductInput{Name: "  "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_Search(t *testing.T) {
	svc, idx, _ := newTestCatalogService(t)

	total, items, err := svc.Search(context.Background(), "blouse", 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "blouse", idx.query)
	assert.Equal(t, 5, idx.from)
	assert.Equal(t, 5, idx.size)

	_, _, err = svc.Search(context.Background(), "", 1, 10)
	require.ErrorIs(t, err, ErrValidation)
}
