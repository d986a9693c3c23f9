package config

import (
	"context"

	"github.com/matzehuels/ontoview/pkg/cache"
)

// OpenCache builds the configured cache backend and its keyer. Redis keys
// are scoped with cache.prefix; file and null caches use unscoped keys.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(nil, c.Cache.Prefix), nil
	default:
		dir, err := c.CacheDir()
		if err != nil {
			return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, cache.NewDefaultKeyer(), nil
	}
}
