package kb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 缓存搜索结果，降低对 Zendesk 的重复请求。
type Cache interface {
	Get(ctx context.Context, key string) (SearchResult, bool)
	Set(ctx context.Context, key string, result SearchResult)
}

// RedisCache 基于 Redis 的缓存实现。
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 创建 Redis 缓存。
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中或反序列化失败都返回 false。
func (c *RedisCache) Get(ctx context.Context, key string) (SearchResult, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return SearchResult{}, false
	}
	var result SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return SearchResult{}, false
	}
	return result, true
}

// Set 写入缓存，序列化或写入失败都静默忽略。
func (c *RedisCache) Set(ctx context.Context, key string, result SearchResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, payload, c.ttl)
}

func cacheKey(query, locale string) string {
	return "kb:search:" + locale + ":" + query
}

func (s *Searcher) fromCache(ctx context.Context, query, locale string) (SearchResult, bool) {
	if s.cache == nil {
		return SearchResult{}, false
	}
	result, ok := s.cache.Get(ctx, cacheKey(query, locale))
	if ok {
		s.log.Debug("知识库缓存命中", "query", query, "locale", locale)
	}
	return result, ok
}

func (s *Searcher) toCache(ctx context.Context, query, locale string, result SearchResult) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, cacheKey(query, locale), result)
}
