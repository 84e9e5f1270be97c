// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"jvhelp-service/internal/config"
	"jvhelp-service/internal/db"
	"jvhelp-service/internal/pkg/cache"
	"jvhelp-service/internal/pkg/metrics"
	"jvhelp-service/internal/repository/postgres"
	contentUsecase "jvhelp-service/internal/service/content"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	logger *zap.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	stopHub context.CancelFunc
}

func NewServer(cfg config.AppConfig) (*Server, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

// Start connects the stores, wires the application and serves HTTP until
// Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{
		URL:      s.cfg.DatabaseURL,
		MaxConns: s.cfg.DBMaxConns,
	})
	if err != nil {
		return err
	}
	s.pool = pool
	s.logger.Info("connected to PostgreSQL")

	if err := db.ApplySchema(ctx, pool); err != nil {
		return err
	}

	// ----- Redis (optional content cache) -----
	var contentCache cache.Cache = cache.Noop{}
	if s.cfg.RedisAddr != "" {
		client, err := db.NewRedisClient(db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			// the site still works uncached
			s.logger.Warn("redis unavailable, content cache disabled", zap.Error(err))
		} else {
			s.redis = client
			contentCache = cache.NewRedisCache(client, "jvhelp:content", s.cfg.ContentTTL)
			s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))
		}
	} else {
		s.logger.Info("REDIS_ADDR not set, content cache disabled")
	}

	// ----- Repositories -----
	store := postgres.NewDB(pool)
	deps := Dependencies{
		Principals: postgres.NewPrincipalRepository(pool),
		Sessions:   postgres.NewSessionRepository(pool),
		Content: contentUsecase.Repositories{
			Hero:       postgres.NewHeroRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Activities: postgres.NewActivityRepository(pool),
			Gallery:    postgres.NewGalleryRepository(pool),
			Thoughts:   postgres.NewThoughtRepository(pool),
		},
		Cache:   contentCache,
		Metrics: metrics.New(),
		Health:  store.Ping,
	}

	container := Build(s.cfg, deps, s.logger)

	hubCtx, cancel := context.WithCancel(context.Background())
	s.stopHub = cancel
	go container.Hub.Run(hubCtx)

	// ----- Bootstrap principal -----
	if s.cfg.BootstrapUsername != "" && s.cfg.BootstrapPassword != "" {
		bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := container.Auth.EnsureBootstrapAdmin(bootCtx, s.cfg.BootstrapUsername, s.cfg.BootstrapPassword)
		cancel()
		if err != nil {
			// don't fail startup, an operator can still use jvadmin
			s.logger.Error("failed to create bootstrap admin", zap.Error(err))
		}
	}

	// ----- Start HTTP -----
	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           container.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains HTTP, stops the hub and closes the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	_ = s.logger.Sync()
	return err
}

func (s *Server) Logger() *zap.Logger {
	return s.logger
}
