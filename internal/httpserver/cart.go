package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/middleware/auth"
	"github.com/Skotchmaster/ecommerce_backend/internal/service"
	"github.com/Skotchmaster/ecommerce_backend/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) userID(c echo.Context) (string, error) {
	u, ok := auth.UserFrom(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Please authenticate using a valid token")
	}
	return u.ID, nil
}

func (h *CartHTTP) bindItem(c echo.Context) (string, error) {
	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return string(req.ItemID), nil
}

func cartError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid itemId")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	itemID, err := h.bindItem(c)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.Add(ctx, userID, itemID); err != nil {
		herr := cartError(err)
		l.Warn("add_to_cart_failed", "status", herr.Code, "item_id", itemID, "error", err)
		return herr
	}

	l.Info("add_to_cart_success", "item_id", itemID)
	return c.JSON(http.StatusOK, "Added")
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	itemID, err := h.bindItem(c)
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.Remove(ctx, userID, itemID); err != nil {
		herr := cartError(err)
		l.Warn("remove_from_cart_failed", "status", herr.Code, "item_id", itemID, "error", err)
		return herr
	}

	l.Info("remove_from_cart_success", "item_id", itemID)
	return c.JSON(http.StatusOK, "Removed")
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := h.userID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.Get(ctx, userID)
	if err != nil {
		herr := cartError(err)
		l.Warn("get_cart_failed", "status", herr.Code, "error", err)
		return herr
	}

	return c.JSON(http.StatusOK, items)
}
