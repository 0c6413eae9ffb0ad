// Package services provides technical collaborators used by the business flows.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/amirphl/linkhub/config"
	"github.com/amirphl/linkhub/utils"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by PageCache.Get when nothing is stored under the path.
var ErrCacheMiss = errors.New("cache miss")

// PageCache stores rendered landing page bodies by path.
type PageCache interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Set(ctx context.Context, path string, html []byte) error
}

// RedisPageCache implements PageCache on redis with a fixed TTL.
type RedisPageCache struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPageCache stores pages under the configured key prefix and TTL.
func NewRedisPageCache(rc *redis.Client, cfg config.CacheConfig) PageCache {
	return &RedisPageCache{
		rc:     rc,
		prefix: cfg.RedisPrefix,
		ttl:    cfg.DefaultTTL,
	}
}

func (c *RedisPageCache) Get(ctx context.Context, path string) ([]byte, error) {
	bs, err := c.rc.Get(ctx, c.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (c *RedisPageCache) Set(ctx context.Context, path string, html []byte) error {
	return c.rc.Set(ctx, c.key(path), html, c.ttl).Err()
}

func (c *RedisPageCache) key(path string) string {
	return c.prefix + utils.LandingPageCacheKey + path
}
