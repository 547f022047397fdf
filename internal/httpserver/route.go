package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/api/internal/middleware"
	"github.com/sweetshop/api/internal/transport"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	SweetHandler *SweetHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.OKMessage("Sweet Shop API is running", nil))
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := &middleware.Auth{Secret: d.JWTSecret}

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, authMW.RequireAuth)

	sweets := e.Group("/sweets")
	sweets.GET("", d.SweetHandler.ListSweets)
	sweets.GET("/search", d.SweetHandler.SearchSweets)
	sweets.GET("/suggest", d.SweetHandler.SuggestSweets)
	sweets.GET("/:id", d.SweetHandler.GetSweet)
	sweets.POST("/:id/purchase", d.SweetHandler.PurchaseSweet, authMW.RequireAuth)

	admin := sweets.Group("", authMW.RequireAdmin)
	admin.POST("", d.SweetHandler.CreateSweet)
	admin.PUT("/:id", d.SweetHandler.UpdateSweet)
	admin.DELETE("/:id", d.SweetHandler.DeleteSweet)
	admin.POST("/:id/restock", d.SweetHandler.RestockSweet)
}

// errorHandler shapes everything that escapes a handler (middleware failures,
// unmatched routes) into the {success, message} envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		if code == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound) {
			msg = "Route not found"
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.Fail(msg))
}
