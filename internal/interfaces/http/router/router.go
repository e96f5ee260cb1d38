package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/infrastructure/auth"
	"github.com/kavara/backend/internal/infrastructure/config"
	"github.com/kavara/backend/internal/infrastructure/logger"
	"github.com/kavara/backend/internal/interfaces/http/handler"
	"github.com/kavara/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth            *handler.AuthHandler
	Product         *handler.ProductHandler
	Box             *handler.BoxHandler
	Order           *handler.OrderHandler
	Inventory       *handler.InventoryHandler
	PaymentCallback *handler.PaymentCallbackHandler
}

// New builds the gin engine with the full route table.
func New(cfg *config.Config, handlers Handlers, jwtService *auth.JWTService, health gin.HandlerFunc, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.CORS(cfg.HTTP),
	)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	if health == nil {
		health = func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		}
	}
	engine.GET("/health", health)

	v1 := engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handlers.Product.List)
			products.GET("/:id", handlers.Product.Get)
			products.GET("/slug/:slug", handlers.Product.GetBySlug)
		}

		boxes := v1.Group("/boxes")
		{
			boxes.GET("", handlers.Box.List)
			boxes.GET("/:id", handlers.Box.Get)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", handlers.Order.Create)
			orders.GET("/:id", handlers.Order.Get)
			orders.GET("/number/:number", handlers.Order.GetByNumber)
			orders.GET("/user/:telegram_user_id", handlers.Order.ListByUser)
			orders.POST("/:id/payment", handlers.Order.CreatePayment)
		}

		v1.POST("/payments/callback", handlers.PaymentCallback.Handle)

		admin := v1.Group("/admin")
		admin.POST("/login", handlers.Auth.Login)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuth(jwtService))
		{
			protected.POST("/products", handlers.Product.Create)
			protected.PUT("/products/:id", handlers.Product.Update)
			protected.PUT("/products/:id/inventory", handlers.Product.ReplaceInventory)
			protected.DELETE("/products/:id", handlers.Product.Delete)

			protected.POST("/boxes", handlers.Box.Create)
			protected.PUT("/boxes/:id", handlers.Box.Update)
			protected.PUT("/boxes/:id/inventory", handlers.Box.ReplaceInventory)
			protected.DELETE("/boxes/:id", handlers.Box.Delete)

			protected.GET("/orders", handlers.Order.List)
			protected.PATCH("/orders/:id/status", handlers.Order.UpdateStatus)
			protected.POST("/orders/:id/cancel", handlers.Order.Cancel)

			protected.GET("/inventory/history", handlers.Inventory.ListHistory)
			protected.GET("/inventory/history/order/:id", handlers.Inventory.ListOrderHistory)
			protected.GET("/inventory/history/entity/:kind/:id", handlers.Inventory.ListEntityHistory)
		}
	}

	return engine
}
