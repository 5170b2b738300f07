// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

type cachedList struct {
	Names []string `json:"names"`
}

func TestResponseCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	var out cachedList
	if rc.Get(ctx, "test-list", &out) {
		t.Error("expected cache miss")
	}

	// Set then hit.
	rc.Set(ctx, "test-list", cachedList{Names: []string{"keripik", "batik"}})
	if !rc.Get(ctx, "test-list", &out) {
		t.Fatal("expected cache hit")
	}
	if len(out.Names) != 2 || out.Names[0] != "keripik" {
		t.Errorf("decoded value mismatch: %+v", out)
	}
}

func TestResponseCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, "invalidate-me", cachedList{Names: []string{"x"}})

	var out cachedList
	if !rc.Get(ctx, "invalidate-me", &out) {
		t.Fatal("expected cache hit before invalidation")
	}

	rc.Invalidate(ctx, "invalidate-me")

	if rc.Get(ctx, "invalidate-me", &out) {
		t.Error("expected cache miss after invalidation")
	}
}

func TestResponseCacheTTLExpiry(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Second)

	ctx := context.Background()
	rc.Set(ctx, "expire-me", cachedList{Names: []string{"x"}})

	time.Sleep(1500 * time.Millisecond)

	var out cachedList
	if rc.Get(ctx, "expire-me", &out) {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestInvalidateArticlesClearsSlugEntries(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()
	rc.Set(ctx, KeyPublishedArticles, cachedList{Names: []string{"a"}})
	rc.Set(ctx, ArticleKey("musyawarah-desa"), cachedList{Names: []string{"b"}})

	rc.InvalidateArticles(ctx)

	var out cachedList
	if rc.Get(ctx, KeyPublishedArticles, &out) {
		t.Error("published list should be invalidated")
	}
	if rc.Get(ctx, ArticleKey("musyawarah-desa"), &out) {
		t.Error("per-article entry should be invalidated")
	}
}
