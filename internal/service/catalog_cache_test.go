package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/domain"
)

func TestCatalogCache_NilSafe(t *testing.T) {
	ctx := context.Background()

	var cache *CatalogCache
	records, hit := cache.GetList(ctx)
	assert.Nil(t, records)
	assert.False(t, hit)
	cache.SetList(ctx, []domain.MediaRecord{{ID: "m1"}})
	cache.RegisterHandlers(nil)
}

func TestCatalogCache_NoRedisDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	cache := NewCatalogCache(nil, zap.NewNop())

	cache.SetList(ctx, []domain.MediaRecord{{ID: "m1"}})
	_, hit := cache.GetList(ctx)
	assert.False(t, hit)
}
