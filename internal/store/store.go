package store

import (
	"context"
	"errors"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateCart overwrites the whole cart map of the user.
	UpdateCart(ctx context.Context, userID string, c cart.Cart) error
}

type ProductStore interface {
	// ListProducts returns products in insertion order.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// NextProductID reserves the next sequential product id.
	NextProductID(ctx context.Context) (int, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	// DeleteProduct removes the first product with the given sequential id.
	// It reports whether anything was deleted.
	DeleteProduct(ctx context.Context, productID int) (bool, error)
}

type Store interface {
	UserStore
	ProductStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
