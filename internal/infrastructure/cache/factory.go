package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReferenceCacheFactory creates reference caches based on configuration
type ReferenceCacheFactory struct {
	redisConfig        config.RedisConfig
	cacheConfig        config.CacheConfig
	logger             *zap.Logger
	allowLocalFallback bool
}

// ReferenceCacheFactoryOption is a functional option for configuring the factory
type ReferenceCacheFactoryOption func(*ReferenceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReferenceCacheFactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.logger = logger
	}
}

// WithLocalFallback controls whether to fall back to an L1 only cache when Redis is unavailable
// Default is true (allow fallback)
func WithLocalFallback(allow bool) ReferenceCacheFactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.allowLocalFallback = allow
	}
}

// NewReferenceCacheFactory creates a new factory
func NewReferenceCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...ReferenceCacheFactoryOption) *ReferenceCacheFactory {
	f := &ReferenceCacheFactory{
		redisConfig:        redisCfg,
		cacheConfig:        cacheCfg,
		logger:             zap.NewNop(),
		allowLocalFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *ReferenceCacheFactory) referenceConfig() ReferenceCacheConfig {
	return ReferenceCacheConfig{
		L1TTL:     f.cacheConfig.L1TTL,
		L2TTL:     f.cacheConfig.L2TTL,
		KeyPrefix: f.cacheConfig.KeyPrefix,
	}
}

// CreateLocalCache creates an L1 only cache.
// Entries of deleted shops and channels may survive on other instances until
// L1TTL. Customer writes resolve references against the store, so only read
// filters can observe them.
func (f *ReferenceCacheFactory) CreateLocalCache() *ReferenceCache {
	return NewReferenceCache(
		WithReferenceConfig(f.referenceConfig()),
		WithReferenceLogger(f.logger),
	)
}

// CreateCache creates a tiered cache when Redis is enabled and reachable.
// The returned close function releases the Redis client, if any.
func (f *ReferenceCacheFactory) CreateCache(ctx context.Context) (*ReferenceCache, func() error, error) {
	noop := func() error { return nil }

	if !f.redisConfig.Enabled {
		f.logger.Info("Using local reference cache")
		return f.CreateLocalCache(), noop, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using tiered reference cache", zap.String("redis", f.redisConfig.Addr()))
		return NewReferenceCache(
			WithReferenceConfig(f.referenceConfig()),
			WithReferenceLogger(f.logger),
			WithRedis(client),
		), client.Close, nil
	}

	if !f.allowLocalFallback {
		return nil, noop, fmt.Errorf("Redis required for reference cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to local reference cache", zap.Error(err))
	return f.CreateLocalCache(), noop, nil
}

// NewRedisClient creates a Redis client and checks the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
