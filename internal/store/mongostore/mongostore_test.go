package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("ecommerce_test_%d", time.Now().UnixNano())
	r, err := Open(ctx, uri, dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = r.client.Database(dbName).Drop(ctx)
		_ = r.Close(ctx)
	})
	return r
}

func TestUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "ann", Email: "ann@example.com", Password: "hash", CartData: cart.New(3)}
	require.NoError(t, r.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	err := r.CreateUser(ctx, &models.User{Email: "ann@example.com", Password: "x"})
	require.ErrorIs(t, err, store.ErrDuplicateEmail)

	got, err := r.UserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	c := got.CartData.Clone()
	c.Add("2")
	require.NoError(t, r.UpdateCart(ctx, u.ID, c))

	got, err = r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CartData.Count("2"))

	_, err = r.UserByID(ctx, "not-an-object-id")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, r.UpdateCart(ctx, "64b000000000000000000000", c), store.ErrNotFound)
}

func TestProducts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id, err := r.NextProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: id, Name: "a", Available: true}))

	deleted, err := r.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	id, err = r.NextProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	require.NoError(t, r.CreateProduct(ctx, &models.Product{ProductID: id, Name: "b", Available: true}))

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Name)
	assert.Equal(t, 2, items[0].ProductID)
}
