package tag

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheKey 热门标签缓存键
const CacheKey = "conduit:tags:popular"

// Cache 热门标签读穿缓存
type Cache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, tags []string)
}

// RedisCache redis 不可用时退化为总是未命中
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]string, bool) {
	raw, err := c.client.Get(ctx, CacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("读取标签缓存失败")
		}
		return nil, false
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("标签缓存内容损坏")
		return nil, false
	}
	return tags, true
}

func (c *RedisCache) Set(ctx context.Context, tags []string) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, CacheKey, raw, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("写入标签缓存失败")
	}
}
