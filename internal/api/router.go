package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/api/handlers"
	"github.com/jafarshop/draftproxy/internal/api/middleware"
	"github.com/jafarshop/draftproxy/internal/config"
	"github.com/jafarshop/draftproxy/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *service.DraftOrderService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// App proxy routes (signed by Shopify, routed under the shop's domain)
	proxyRoutes := router.Group("")
	proxyRoutes.Use(middleware.ProxyAuth(cfg.Shopify, cfg.Environment, logger))
	{
		proxyRoutes.POST("/create", handlers.HandleCreateDraftOrder(svc, logger))
		proxyRoutes.POST("/cancel", handlers.HandleCancelDraftOrder(svc, logger))
		proxyRoutes.POST("/list", handlers.HandleListDraftOrders(svc, logger))
		proxyRoutes.GET("/list", handlers.HandleListDraftOrdersGET(svc, logger))
	}

	// Unauthenticated sanity probes for the POST-only endpoints
	router.GET("/create", handlers.HandleProbe("Draft order create endpoint is working"))
	router.GET("/cancel", handlers.HandleProbe("Draft order cancel endpoint is working"))

	// Webhooks (authenticated by HMAC over the raw body, not by the proxy)
	router.POST("/webhooks/draft-orders-create", handlers.HandleDraftOrderCreatedWebhook(cfg, svc, logger))

	return router
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
