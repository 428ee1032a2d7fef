package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

// setupRouter declares every route group. Public routes need no token,
// /api/v1 authenticated routes need a valid Bearer token, and /admin
// routes additionally require the admin role.
func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// ===== HEALTH =====
	health := func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.Config.App.Version})
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	// ===== PUBLIC ROUTES =====
	v1.POST("/auth/register", c.UserHandler.Register)
	v1.POST("/auth/login", c.UserHandler.Login)

	v1.GET("/products", c.CatalogHandler.ListProducts)
	v1.GET("/products/:id", c.CatalogHandler.GetProduct)
	v1.GET("/products/:id/reviews", c.ReviewHandler.ListProductReviews)
	v1.GET("/categories", c.CatalogHandler.ListCategories)

	// ===== AUTHENTICATED ROUTES =====
	auth := v1.Group("")
	auth.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		auth.GET("/auth/me", c.UserHandler.Me)

		auth.POST("/checkout", c.OrderHandler.Checkout)
		auth.GET("/orders", c.OrderHandler.ListMyOrders)
		auth.GET("/orders/:id", c.OrderHandler.GetOrder)

		auth.POST("/payment", c.PaymentHandler.RecordPayment)
		auth.GET("/payment/transactions", c.PaymentHandler.ListMyTransactions)

		auth.POST("/vouchers/store-user", c.VoucherHandler.StoreUserVoucher)
		auth.GET("/vouchers/me", c.VoucherHandler.ListMyVouchers)

		auth.POST("/products/:id/reviews", c.ReviewHandler.CreateReview)
	}

	// ===== ADMIN ROUTES =====
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
	{
		admin.POST("/products", c.CatalogHandler.CreateProduct)
		admin.PUT("/products/:id", c.CatalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", c.CatalogHandler.DeleteProduct)
		admin.POST("/products/:id/restock", c.InventoryHandler.Restock)

		admin.POST("/vouchers", c.VoucherHandler.CreateVoucher)

		admin.POST("/orders/:id/confirm", c.OrderHandler.ConfirmOrder)
		admin.POST("/orders/:id/cancel", c.OrderHandler.CancelOrder)
	}

	return router
}
