// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public JSON responses.
// Published article lists and catalog lists are served from here so the
// common read path skips the database; admin writes invalidate the
// affected keys immediately instead of waiting for the TTL.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL bounds staleness when an invalidation is missed.
	DefaultResponseTTL = 5 * time.Minute
)

// Well-known cache keys for the public list endpoints.
const (
	KeyPublishedArticles = "articles:published"
	KeyAnnouncements     = "articles:announcements"
	KeyProducts          = "catalog:products"
	KeyCulinary          = "catalog:culinary"
	KeyBooklets          = "catalog:booklets"
	KeyProfile           = "profile"
)

// ArticleKey returns the cache key for a single published article.
func ArticleKey(slug string) string {
	return "article:" + slug
}

// ResponseCache manages cached JSON payloads in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get loads the cached value for a key into dest. Returns false on a
// miss; cache errors are logged and treated as misses.
func (rc *ResponseCache) Get(ctx context.Context, key string, dest any) bool {
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		slog.Warn("response cache decode error", "key", key, "error", err)
		rc.Invalidate(ctx, key)
		return false
	}
	slog.Debug("response cache hit", "key", key)
	return true
}

// Set stores a value for a key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("response cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given keys from the cache.
func (rc *ResponseCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
			slog.Warn("response cache invalidate error", "key", key, "error", err)
		}
		slog.Debug("response cache invalidated", "key", key)
	}
}

// InvalidateArticles clears every article-derived entry: the list keys
// plus all cached single articles. Called after any article write since
// a slug may have changed.
func (rc *ResponseCache) InvalidateArticles(ctx context.Context) {
	rc.Invalidate(ctx, KeyPublishedArticles, KeyAnnouncements)
	rc.invalidatePattern(ctx, "article:*")
}

func (rc *ResponseCache) invalidatePattern(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return
		}
	}
}
