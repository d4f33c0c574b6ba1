package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/service"
	"github.com/Skotchmaster/ecommerce_backend/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) list(c echo.Context, name string, fn func(echo.Context) ([]models.Product, error)) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product."+name)

	items, err := fn(c)
	if err != nil {
		l.Error(name+"_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}
	l.Info(name+"_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) AllProducts(c echo.Context) error {
	return h.list(c, "all_products", func(c echo.Context) ([]models.Product, error) {
		return h.Svc.ListAll(c.Request().Context())
	})
}

func (h *CatalogHTTP) NewCollections(c echo.Context) error {
	return h.list(c, "new_collections", func(c echo.Context) ([]models.Product, error) {
		return h.Svc.NewCollections(c.Request().Context())
	})
}

func (h *CatalogHTTP) PopularInWomen(c echo.Context) error {
	return h.list(c, "popular_in_women", func(c echo.Context) ([]models.Product, error) {
		return h.Svc.PopularInWomen(c.Request().Context())
	})
}

func (h *CatalogHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add")

	var req transport.AddProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_product_failed", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.Svc.AddProduct(ctx, service.ProductInput{
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
		NewPrice: float64(req.NewPrice),
		OldPrice: float64(req.OldPrice),
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_product_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("add_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	l.Info("add_product_success", "product_id", p.ProductID)
	return c.JSON(http.StatusOK, transport.ProductAck{Success: true, Name: p.Name})
}

// RemoveProduct acknowledges even when nothing matched the id.
func (h *CatalogHTTP) RemoveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.remove")

	var req transport.RemoveProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("remove_product_failed", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := req.ID.Int()
	if err != nil {
		l.Warn("remove_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	deleted, err := h.Svc.RemoveProduct(ctx, id)
	if err != nil {
		l.Error("remove_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove product")
	}

	l.Info("remove_product_success", "product_id", id, "deleted", deleted)
	return c.JSON(http.StatusOK, transport.ProductAck{Success: true, Name: req.Name})
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	total, items, err := h.Svc.Search(ctx, q, page, size)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_failed", "status", 400, "reason", "empty query")
			return echo.NewHTTPError(http.StatusBadRequest, "query error")
		}
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search error")
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: items})
}
