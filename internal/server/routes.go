package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Collection *handler.CollectionHandler
	Product    *handler.ProductHandler
	Review     *handler.ReviewHandler
	Cart       *handler.CartHandler
	Customer   *handler.CustomerHandler
	Order      *handler.OrderHandler
	AuditLog   *handler.AuditLogHandler
}

// RegisterRoutes wires every endpoint explicitly, one handler per verb.
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	authed := middleware.AuthJWT(cfg)
	staff := middleware.StaffGuard()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	e.GET("/collections", h.Collection.List)
	e.POST("/collections", h.Collection.Create, authed, staff)
	e.GET("/collections/:id", h.Collection.Get)
	e.PUT("/collections/:id", h.Collection.Update, authed, staff)
	e.DELETE("/collections/:id", h.Collection.Delete, authed, staff)

	e.GET("/products", h.Product.List)
	e.POST("/products", h.Product.Create, authed, staff)
	e.POST("/products/clear-inventory", h.Product.ClearInventory, authed, staff)
	e.GET("/products/:id", h.Product.Get)
	e.PUT("/products/:id", h.Product.Update, authed, staff)
	e.DELETE("/products/:id", h.Product.Delete, authed, staff)
	e.PUT("/products/:id/inventory", h.Product.SetInventory, authed, staff)

	e.GET("/products/:id/reviews", h.Review.List)
	e.POST("/products/:id/reviews", h.Review.Create)
	e.GET("/products/:id/reviews/:review_id", h.Review.Get)
	e.PUT("/products/:id/reviews/:review_id", h.Review.Update, authed, staff)
	e.DELETE("/products/:id/reviews/:review_id", h.Review.Delete, authed, staff)

	e.POST("/carts", h.Cart.Create)
	e.GET("/carts/:id", h.Cart.Get)
	e.DELETE("/carts/:id", h.Cart.Delete)
	e.GET("/carts/:id/items", h.Cart.ListItems)
	e.POST("/carts/:id/items", h.Cart.AddItem)
	e.GET("/carts/:id/items/:item_id", h.Cart.GetItem)
	e.PATCH("/carts/:id/items/:item_id", h.Cart.UpdateItem)
	e.DELETE("/carts/:id/items/:item_id", h.Cart.DeleteItem)

	e.GET("/customers", h.Customer.List, authed, staff)
	e.POST("/customers", h.Customer.Create, authed, staff)
	e.GET("/customers/me", h.Customer.Me, authed)
	e.PUT("/customers/me", h.Customer.UpdateMe, authed)
	e.GET("/customers/:id", h.Customer.Get, authed, staff)
	e.PUT("/customers/:id", h.Customer.Update, authed, staff)
	e.DELETE("/customers/:id", h.Customer.Delete, authed, staff)
	e.GET("/customers/:id/history", h.Customer.History, authed, staff)

	e.GET("/orders", h.Order.List, authed)
	e.POST("/orders", h.Order.Checkout, authed)
	e.GET("/orders/:id", h.Order.Get, authed)
	e.PATCH("/orders/:id", h.Order.Update, authed, staff)
	e.DELETE("/orders/:id", h.Order.Delete, authed, staff)

	e.GET("/audit-logs", h.AuditLog.List, authed, staff)
}
