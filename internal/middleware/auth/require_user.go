package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/tokens"
)

const (
	HeaderAuthToken = "auth-token"
	contextKey      = "session"
)

// RequireUser rejects every missing, malformed or forged auth-token with the same 401 body.
func RequireUser(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKey,
		TokenLookup: "header:" + HeaderAuthToken,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return tokens.Parse(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_error", "status", http.StatusUnauthorized, "reason", err.Error())
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"errors": "Please authenticate using a valid token",
			})
		},
	})
}

func UserFrom(c echo.Context) (tokens.SessionUser, bool) {
	claims, ok := c.Get(contextKey).(*tokens.SessionClaims)
	if !ok || claims == nil || claims.User.ID == "" {
		return tokens.SessionUser{}, false
	}
	return claims.User, true
}
