package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/store"
)

// CacheDir returns the file cache directory: cache.dir if set, else
// $XDG_CACHE_HOME/familytower, else ~/.cache/familytower.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// OpenCache opens the configured cache backend. Entries never outlive
// cache.ttl.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, redisErr := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
		if redisErr != nil {
			return nil, redisErr
		}
		backend = rc
	default:
		dir, dirErr := c.CacheDir()
		if dirErr != nil {
			return cache.NewNullCache(), nil
		}
		backend, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	return cache.WithMaxTTL(backend, c.Cache.TTL.Duration), nil
}

// OpenStore opens the configured family store.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store.Backend == BackendMongo {
		ms, err := store.NewMongoStore(ctx, store.MongoOptions{
			URI:        c.Store.MongoURI,
			Database:   c.Store.MongoDatabase,
			Collection: c.Store.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	fs, err := store.NewFileStore(c.Store.Dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
