package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Default reference cache settings
const (
	DefaultReferenceL1TTL     = 30 * time.Second
	DefaultReferenceL2TTL     = 5 * time.Minute
	DefaultReferenceKeyPrefix = "shopcrm:ref:"
	defaultCleanupInterval    = time.Minute
	redisOperationTimeout     = 200 * time.Millisecond
)

// ReferenceCacheConfig holds the TTLs of both tiers
type ReferenceCacheConfig struct {
	L1TTL     time.Duration
	L2TTL     time.Duration
	KeyPrefix string
}

// DefaultReferenceCacheConfig returns the default configuration
func DefaultReferenceCacheConfig() ReferenceCacheConfig {
	return ReferenceCacheConfig{
		L1TTL:     DefaultReferenceL1TTL,
		L2TTL:     DefaultReferenceL2TTL,
		KeyPrefix: DefaultReferenceKeyPrefix,
	}
}

// ReferenceCache caches the display names of shops and channels.
// L1: process local go-cache. L2: Redis, shared across instances and optional.
// Redis errors degrade to a miss, the caller then reads the database.
type ReferenceCache struct {
	l1     *gocache.Cache
	l2     redis.UniversalClient
	config ReferenceCacheConfig
	logger *zap.Logger

	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// ReferenceCacheOption is a functional option for configuring the cache
type ReferenceCacheOption func(*ReferenceCache)

// WithReferenceConfig sets the cache configuration
func WithReferenceConfig(config ReferenceCacheConfig) ReferenceCacheOption {
	return func(c *ReferenceCache) {
		c.config = config
	}
}

// WithReferenceLogger sets the logger for the cache
func WithReferenceLogger(logger *zap.Logger) ReferenceCacheOption {
	return func(c *ReferenceCache) {
		c.logger = logger
	}
}

// WithRedis enables the shared L2 tier
func WithRedis(client redis.UniversalClient) ReferenceCacheOption {
	return func(c *ReferenceCache) {
		c.l2 = client
	}
}

// NewReferenceCache creates a reference cache. Without WithRedis only L1 is used.
func NewReferenceCache(opts ...ReferenceCacheOption) *ReferenceCache {
	c := &ReferenceCache{
		config: DefaultReferenceCacheConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.config.KeyPrefix == "" {
		c.config.KeyPrefix = DefaultReferenceKeyPrefix
	}
	c.l1 = gocache.New(c.config.L1TTL, defaultCleanupInterval)
	return c
}

// Get returns the cached value of key (L1 -> L2)
func (c *ReferenceCache) Get(ctx context.Context, key string) (string, bool) {
	if v, ok := c.l1.Get(key); ok {
		atomic.AddInt64(&c.l1Hits, 1)
		return v.(string), true
	}
	atomic.AddInt64(&c.l1Misses, 1)

	if c.l2 == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, redisOperationTimeout)
	defer cancel()

	value, err := c.l2.Get(ctx, c.config.KeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("L2 reference cache error", zap.String("key", key), zap.Error(err))
		}
		atomic.AddInt64(&c.l2Misses, 1)
		return "", false
	}
	atomic.AddInt64(&c.l2Hits, 1)

	// Populate L1
	c.l1.Set(key, value, c.config.L1TTL)
	return value, true
}

// Set stores value under key in both tiers
func (c *ReferenceCache) Set(ctx context.Context, key, value string) {
	c.l1.Set(key, value, c.config.L1TTL)

	if c.l2 == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisOperationTimeout)
	defer cancel()

	if err := c.l2.Set(ctx, c.config.KeyPrefix+key, value, c.config.L2TTL).Err(); err != nil {
		c.logger.Warn("Failed to set L2 reference cache", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes key from both tiers. Other instances keep their L1 entry
// until it expires.
func (c *ReferenceCache) Delete(ctx context.Context, key string) {
	c.l1.Delete(key)

	if c.l2 == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisOperationTimeout)
	defer cancel()

	if err := c.l2.Del(ctx, c.config.KeyPrefix+key).Err(); err != nil {
		c.logger.Warn("Failed to delete from L2 reference cache", zap.String("key", key), zap.Error(err))
	}
}

// Flush empties the local tier
func (c *ReferenceCache) Flush() {
	c.l1.Flush()
}

// ReferenceCacheStats holds hit and miss counters of both tiers
type ReferenceCacheStats struct {
	L1Hits   int64
	L1Misses int64
	L2Hits   int64
	L2Misses int64
	L1Items  int
}

// Stats returns cache statistics
func (c *ReferenceCache) Stats() ReferenceCacheStats {
	return ReferenceCacheStats{
		L1Hits:   atomic.LoadInt64(&c.l1Hits),
		L1Misses: atomic.LoadInt64(&c.l1Misses),
		L2Hits:   atomic.LoadInt64(&c.l2Hits),
		L2Misses: atomic.LoadInt64(&c.l2Misses),
		L1Items:  c.l1.ItemCount(),
	}
}
