package cache

import (
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/config"
)

// NewIdempotencyStore creates an idempotency store based on configuration.
// Prefers Redis when enabled; falls back to the in-memory store if the
// connection fails so a Redis outage never blocks form submissions.
func NewIdempotencyStore(cfg *config.RedisConfig, logger *zap.Logger) IdempotencyStore {
	if cfg != nil && cfg.Enabled {
		store, err := NewRedisIdempotencyStore(RedisConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err == nil {
			logger.Info("Using Redis idempotency store",
				zap.String("host", cfg.Host),
				zap.Int("port", cfg.Port))
			return store
		}
		logger.Warn("Failed to connect to Redis, falling back to in-memory idempotency store",
			zap.Error(err))
	} else {
		logger.Info("Redis disabled, using in-memory idempotency store")
	}

	return NewInMemoryIdempotencyStore()
}
