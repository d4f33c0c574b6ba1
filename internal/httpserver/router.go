package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/ecommerce_backend/internal/metrics"
	"github.com/Skotchmaster/ecommerce_backend/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/ecommerce_backend/internal/middleware/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/validation"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	UploadHandler  *UploadHTTP
	JWTSecret      []byte
	Ready          func(ctx context.Context) error
	Metrics        *metrics.Metrics
	// ImagesDir is served at /images when uploads go to local disk.
	ImagesDir   string
	CORSOrigins []string
}

func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.EchoValidator{}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, auth.HeaderAuthToken},
	}))
	e.Use(echomw.BodyLimit("10M"))

	Register(e, d)
	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "App is running") })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}
	if d.ImagesDir != "" {
		e.Static("/images", d.ImagesDir)
	}

	e.POST("/signup", d.AuthHandler.Signup)
	e.POST("/login", d.AuthHandler.Login)

	e.GET("/allproducts", d.CatalogHandler.AllProducts)
	e.GET("/newcollections", d.CatalogHandler.NewCollections)
	e.GET("/popularinwomen", d.CatalogHandler.PopularInWomen)
	e.GET("/search", d.CatalogHandler.Search)
	e.POST("/addproduct", d.CatalogHandler.AddProduct)
	e.POST("/removeproduct", d.CatalogHandler.RemoveProduct)

	e.POST("/upload", d.UploadHandler.Upload)

	requireUser := auth.RequireUser(d.JWTSecret)
	e.POST("/addtocart", d.CartHandler.AddToCart, requireUser)
	e.POST("/removefromcart", d.CartHandler.RemoveFromCart, requireUser)
	e.POST("/getcart", d.CartHandler.GetCart, requireUser)
}
