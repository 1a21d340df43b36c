package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain/repository"
)

// resultCache is the cache-aside helper shared by the analysis use cases.
// A nil repository disables caching; failures are logged and treated as misses.
type resultCache struct {
	repo   repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func newResultCache(repo repository.CacheRepository, ttl time.Duration, logger *zap.Logger) resultCache {
	return resultCache{repo: repo, ttl: ttl, logger: logger}
}

func (c resultCache) load(ctx context.Context, key string, dest interface{}) bool {
	if c.repo == nil {
		return false
	}
	hit, err := c.repo.GetJSON(ctx, key, dest)
	if err != nil {
		c.logger.Warn("Failed to read cached result", zap.String("key", key), zap.Error(err))
		return false
	}
	if hit {
		c.logger.Debug("Result served from cache", zap.String("key", key))
	}
	return hit
}

func (c resultCache) store(ctx context.Context, key string, value interface{}) {
	if c.repo == nil || c.ttl <= 0 {
		return
	}
	if err := c.repo.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
}
