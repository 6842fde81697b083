package cache

import (
	"io"

	appcatalog "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableCache is a ProjectionCache that holds resources
type ClosableCache interface {
	appcatalog.ProjectionCache
	io.Closer
}

// ProjectionCacheFactory creates the public projection cache from configuration
type ProjectionCacheFactory struct {
	cacheConfig config.CacheConfig
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// ProjectionCacheFactoryOption is a functional option for configuring the factory
type ProjectionCacheFactoryOption func(*ProjectionCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ProjectionCacheFactoryOption {
	return func(f *ProjectionCacheFactory) {
		f.logger = logger
	}
}

// NewProjectionCacheFactory creates a new factory
func NewProjectionCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...ProjectionCacheFactoryOption) *ProjectionCacheFactory {
	f := &ProjectionCacheFactory{
		cacheConfig: cacheCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns the configured cache, or nil when caching is disabled.
// When the redis backend cannot be reached the factory falls back to memory.
func (f *ProjectionCacheFactory) CreateCache() ClosableCache {
	if !f.cacheConfig.Enabled {
		f.logger.Info("Public catalog cache disabled")
		return nil
	}

	if f.cacheConfig.Backend == config.CacheBackendRedis {
		store, err := NewRedisProjectionCache(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("Using Redis public catalog cache",
				zap.String("addr", f.redisConfig.Addr()),
				zap.Duration("ttl", f.cacheConfig.TTL))
			return store
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory public catalog cache. "+
			"Instances will not share cached projections.",
			zap.Error(err))
	}

	f.logger.Info("Using in-memory public catalog cache", zap.Duration("ttl", f.cacheConfig.TTL))
	return NewInMemoryProjectionCache()
}
