// internal/service/content/service.go
package content

import (
	"context"

	"jvhelp-service/internal/domain/content"
	wstypes "jvhelp-service/internal/domain/websocket"
	"jvhelp-service/internal/pkg/cache"

	"go.uber.org/zap"
)

// EventPublisher pushes live events to connected admins.
type EventPublisher interface {
	Broadcast(channel wstypes.ChannelType, eventType wstypes.EventType, data any)
}

type Repositories struct {
	Hero       content.HeroRepository
	Products   content.ProductRepository
	Activities content.ActivityRepository
	Gallery    content.GalleryRepository
	Thoughts   content.ThoughtRepository
}

// ContentService serves the public site and the admin editors.
type ContentService struct {
	repos  Repositories
	cache  cache.Cache
	events EventPublisher
	logger *zap.Logger
}

func NewContentService(repos Repositories, c cache.Cache, logger *zap.Logger) *ContentService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ContentService{repos: repos, cache: c, logger: logger}
}

// SetPublisher attaches the websocket hub.
func (s *ContentService) SetPublisher(p EventPublisher) {
	s.events = p
}

func (s *ContentService) publish(channel wstypes.ChannelType, eventType wstypes.EventType, data any) {
	if s.events != nil {
		s.events.Broadcast(channel, eventType, data)
	}
}

// cached serves key from the cache or fills it with load. Cache failures are
// logged and never fail the read.
func cached[T any](ctx context.Context, s *ContentService, key string, load func() (T, error)) (T, error) {
	var v T
	found, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		s.logger.Warn("content cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found && err == nil {
		return v, nil
	}

	v, err = load()
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v); err != nil {
		s.logger.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (s *ContentService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.InvalidatePrefix(ctx, prefix); err != nil {
		s.logger.Warn("content cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
