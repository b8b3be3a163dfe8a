package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate-backend/internal/shared/middleware"
	"paygate-backend/internal/shared/response"
	"paygate-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPaymentRoutes(v1, c)
		setupWebhookRoutes(v1, c)
		setupAdminPaymentRoutes(v1, c)
	}

	return router
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	{
		payments.GET("/providers", c.PaymentHandler.ListProviders)

		authed := payments.Group("", middleware.AuthMiddleware(c.Config.JWT.Secret))
		{
			authed.POST("/create", c.PaymentHandler.CreatePayment)
			authed.GET("/:provider/:payment_id", c.PaymentHandler.FetchStatus)
		}
	}
}

// ========================================
// WEBHOOK ROUTES
// ========================================
// Webhooks authenticate by signature, not by session; no auth middleware.
func setupWebhookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/webhooks/:provider", c.WebhookHandler.Handle)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin/payments",
		middleware.AuthMiddleware(c.Config.JWT.Secret),
		middleware.AdminMiddleware(),
	)
	{
		admin.POST("/:provider/:payment_id/capture", c.PaymentHandler.Capture)
		admin.POST("/:provider/:payment_id/refund", c.PaymentHandler.Refund)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"gateways": c.Registry.Providers(),
		})
	}
}
