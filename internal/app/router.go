// internal/app/router.go
package app

import (
	"context"
	"net/http"
	"time"

	authHandler "jvhelp-service/internal/handlers/auth"
	contentHandler "jvhelp-service/internal/handlers/content"
	wsHandler "jvhelp-service/internal/handlers/websocket"
	"jvhelp-service/internal/middleware"
	"jvhelp-service/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	ContentHandler *contentHandler.ContentHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics

	// Health checks backing stores; nil means always healthy.
	Health func(ctx context.Context) error
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		if h.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.Health(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	// ==================== Public Site ====================
	api.GET("/hero-content", h.ContentHandler.GetHero)
	api.GET("/activities-content", h.ContentHandler.GetActivities)
	api.GET("/activities-gallery", h.ContentHandler.GetGallery)
	api.GET("/products", h.ContentHandler.GetProducts)
	api.GET("/user-thoughts", h.ContentHandler.GetThoughts)
	api.POST("/user-thoughts", h.ContentHandler.SubmitThought)

	// ==================== Admin Session ====================
	adminPublic := api.Group("/admin")
	{
		adminPublic.POST("/login", h.AuthHandler.Login)
		// checks its own bearer header so repeated logouts succeed
		adminPublic.POST("/logout", h.AuthHandler.Logout)
		// authenticates the handshake itself (token may come as a query param)
		adminPublic.GET("/ws", h.WSHandler.HandleConnection)
	}

	// ==================== Admin (Bearer) ====================
	adminProtected := api.Group("/admin")
	adminProtected.Use(h.AuthMiddleware.AdminAuth())
	{
		adminProtected.GET("/dashboard", h.AuthHandler.Dashboard)
		adminProtected.GET("/me", h.AuthHandler.Me)

		adminProtected.GET("/hero-content", h.ContentHandler.AdminGetHero)
		adminProtected.PUT("/hero-content", h.ContentHandler.AdminUpdateHero)

		adminProtected.GET("/products", h.ContentHandler.AdminListProducts)
		adminProtected.POST("/products", h.ContentHandler.AdminCreateProduct)
		adminProtected.PUT("/products/:id", h.ContentHandler.AdminUpdateProduct)
		adminProtected.DELETE("/products/:id", h.ContentHandler.AdminDeleteProduct)

		adminProtected.GET("/thoughts", h.ContentHandler.AdminListThoughts)
		adminProtected.DELETE("/thoughts/:id", h.ContentHandler.AdminDeleteThought)

		adminProtected.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
