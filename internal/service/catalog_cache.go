package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/domain"
	"github.com/spec-kit/music-hub/internal/events"
	"github.com/spec-kit/music-hub/internal/persistence"
)

const (
	catalogListCacheKey = "catalog:list"
	catalogListCacheTTL = 30 * time.Second
)

// CatalogCache keeps the full catalog listing warm in Redis and drops it
// whenever a catalog mutation event fires. Cache failures degrade to uncached
// reads; they never fail a request.
type CatalogCache struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewCatalogCache creates the cache.
func NewCatalogCache(redis *persistence.Redis, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{redis: redis, logger: logger}
}

// RegisterHandlers subscribes invalidation to catalog mutation events.
func (c *CatalogCache) RegisterHandlers(dispatcher events.Dispatcher) {
	if c == nil || dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventMediaUploaded, c.handleInvalidate)
	dispatcher.Subscribe(events.EventMediaLiked, c.handleInvalidate)
	dispatcher.Subscribe(events.EventMediaCommented, c.handleInvalidate)
}

// GetList returns the cached listing, reporting false on any miss or error.
func (c *CatalogCache) GetList(ctx context.Context) ([]domain.MediaRecord, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	var records []domain.MediaRecord
	hit, err := c.redis.GetJSON(ctx, catalogListCacheKey, &records)
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.Error(err))
		return nil, false
	}
	return records, hit
}

// SetList stores the listing with a short TTL.
func (c *CatalogCache) SetList(ctx context.Context, records []domain.MediaRecord) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.SetJSON(ctx, catalogListCacheKey, records, catalogListCacheTTL); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (c *CatalogCache) handleInvalidate(ctx context.Context, event events.Event) error {
	if err := c.redis.Delete(ctx, catalogListCacheKey); err != nil {
		return err
	}
	c.logger.Debug("catalog cache invalidated",
		zap.String("event_type", string(event.Type)),
		zap.String("media_id", event.MediaID))
	return nil
}
