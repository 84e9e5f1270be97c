// internal/app/container.go
package app

import (
	"context"
	"time"

	"jvhelp-service/internal/config"
	"jvhelp-service/internal/domain/admin"
	authHandler "jvhelp-service/internal/handlers/auth"
	contentHandler "jvhelp-service/internal/handlers/content"
	wsHandler "jvhelp-service/internal/handlers/websocket"
	"jvhelp-service/internal/middleware"
	"jvhelp-service/internal/pkg/cache"
	"jvhelp-service/internal/pkg/credential"
	"jvhelp-service/internal/pkg/metrics"
	authUsecase "jvhelp-service/internal/service/auth"
	contentUsecase "jvhelp-service/internal/service/content"
	"jvhelp-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the stores the service runs on. Server.Start fills them
// from Postgres and Redis; tests use the memory stores.
type Dependencies struct {
	Principals admin.PrincipalRepository
	Sessions   admin.SessionRepository
	Content    contentUsecase.Repositories
	Cache      cache.Cache
	Hasher     credential.Hasher
	Metrics    *metrics.Metrics
	Health     func(ctx context.Context) error

	// Clock overrides time.Now for the Session Authority.
	Clock func() time.Time
}

const wsRoute = "/api/admin/ws"

// Container is the wired application.
type Container struct {
	Engine  *gin.Engine
	Auth    *authUsecase.AuthService
	Content *contentUsecase.ContentService
	Hub     *websocket.Hub
}

// Build wires services, handlers and routes. The hub is returned unstarted.
func Build(cfg config.AppConfig, deps Dependencies, logger *zap.Logger) *Container {
	if deps.Hasher == nil {
		deps.Hasher = credential.NewBcrypt(cfg.BcryptCost)
	}

	// ----- Services (Usecases) -----
	opts := []authUsecase.Option{
		authUsecase.WithSessionTTL(cfg.SessionTTL),
		authUsecase.WithMetrics(deps.Metrics),
	}
	if deps.Clock != nil {
		opts = append(opts, authUsecase.WithClock(deps.Clock))
	}
	authService := authUsecase.NewAuthService(deps.Principals, deps.Sessions, deps.Hasher, logger, opts...)
	contentService := contentUsecase.NewContentService(deps.Content, deps.Cache, logger)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(authService, logger, deps.Metrics)
	authService.SetNotifier(hub)
	contentService.SetPublisher(hub)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:    authHandler.NewAuthHandler(authService, logger),
		ContentHandler: contentHandler.NewContentHandler(contentService, logger),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService, logger),
		Metrics:        deps.Metrics,
		Health:         deps.Health,
	}

	// ----- Middlewares -----
	engine := gin.New()
	engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.MetricsMiddleware(deps.Metrics),
		middleware.TimeoutMiddleware(cfg.RequestTimeout, wsRoute),
	)

	SetupRouter(engine, logger, handlers)

	return &Container{
		Engine:  engine,
		Auth:    authService,
		Content: contentService,
		Hub:     hub,
	}
}
