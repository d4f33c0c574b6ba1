package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/service"
	"github.com/Skotchmaster/ecommerce_backend/internal/transport"
)

const (
	msgDuplicateEmail     = "existing user found with same email address"
	msgInvalidCredentials = "Wrong Email Id or Password"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func authFailure(c echo.Context, status int, msg string) error {
	return c.JSON(status, transport.AuthResponse{Success: false, Errors: msg})
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return authFailure(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "validation", "error", err)
		return authFailure(c, http.StatusBadRequest, err.Error())
	}

	token, err := h.Svc.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("signup_failed", "status", 400, "reason", "duplicate email")
			return authFailure(c, http.StatusBadRequest, msgDuplicateEmail)
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_failed", "status", 400, "reason", "validation", "error", err)
			return authFailure(c, http.StatusBadRequest, err.Error())
		default:
			l.Error("signup_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	l.Info("signup_success")
	return c.JSON(http.StatusOK, transport.AuthResponse{Success: true, Token: token})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return authFailure(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "validation", "error", err)
		return authFailure(c, http.StatusBadRequest, msgInvalidCredentials)
	}

	token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return authFailure(c, http.StatusBadRequest, msgInvalidCredentials)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.AuthResponse{Success: true, Token: token})
}
