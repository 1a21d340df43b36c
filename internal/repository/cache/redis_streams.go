package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/config"
)

// streamReadSlack keeps the socket open a little past the XREADGROUP block.
const streamReadSlack = 3 * time.Second

// NewRedisStreams opens the client the forecast worker consumes jobs with.
// It is separate from the cache client because its reads block.
func NewRedisStreams(cfg *config.RedisConfig, blockTimeout time.Duration, logger *zap.Logger) (*redis.Client, error) {
	client, err := dial(cfg, blockTimeout+streamReadSlack)
	if err != nil {
		return nil, fmt.Errorf("connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Duration("block_timeout", blockTimeout),
	)

	return client, nil
}
