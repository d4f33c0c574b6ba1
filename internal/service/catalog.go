package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/search"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
)

const (
	newCollectionsSize = 8
	popularSize        = 4
)

type ProductInput struct {
	Name     string
	Image    string
	Category string
	NewPrice float64
	OldPrice float64
}

type CatalogService struct {
	Products store.ProductStore
	Index    search.Index
	Events   mykafka.Publisher
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	items, err := s.Products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// NewCollections skips the very first product and keeps the last eight of the rest.
func (s *CatalogService) NewCollections(ctx context.Context) ([]models.Product, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) <= 1 {
		return []models.Product{}, nil
	}
	rest := all[1:]
	if len(rest) > newCollectionsSize {
		rest = rest[len(rest)-newCollectionsSize:]
	}
	return rest, nil
}

// PopularInWomen returns the first four products; no category filter is applied.
func (s *CatalogService) PopularInWomen(ctx context.Context) ([]models.Product, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > popularSize {
		all = all[:popularSize]
	}
	return all, nil
}

func (s *CatalogService) AddProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	id, err := s.Products.NextProductID(ctx)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		ProductID: id,
		Name:      in.Name,
		Image:     in.Image,
		Category:  in.Category,
		NewPrice:  in.NewPrice,
		OldPrice:  in.OldPrice,
		Available: true,
	}
	if err := s.Products.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, *p); err != nil {
			logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ProductID, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, fmt.Sprint(p.ProductID), map[string]any{
		"type":      "product_created",
		"productID": p.ProductID,
		"name":      p.Name,
		"category":  p.Category,
	})
	return p, nil
}

// RemoveProduct reports whether a product was deleted; callers acknowledge either way.
func (s *CatalogService) RemoveProduct(ctx context.Context, productID int) (bool, error) {
	deleted, err := s.Products.DeleteProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", productID, err)
	}
	if !deleted {
		return false, nil
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, productID); err != nil {
			logging.FromContext(ctx).Warn("search_delete_error", "product_id", productID, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, fmt.Sprint(productID), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
	})
	return true, nil
}

func (s *CatalogService) Search(ctx context.Context, q string, page, size int) (int64, []models.Product, error) {
	if strings.TrimSpace(q) == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	if s.Index == nil {
		return 0, []models.Product{}, nil
	}
	from, limit := search.Calculate(page, size)
	return s.Index.Search(ctx, q, from, limit)
}
