package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result cache: L1 in-memory + optional L2 Redis. The TTL is the
// result-freshness window callers layer above the engine (default 30s);
// the engine itself recomputes on every miss.
var searchCache *tieredCache

var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

type tieredCache struct {
	l1         sync.Map // key → *cacheEntry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InitCache sets up the result cache. Call after Init. redisURL can be
// empty to run L1-only.
func InitCache(redisURL string, ttl time.Duration, maxEntries int) {
	c := &tieredCache{ttl: ttl, maxEntries: maxEntries}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		} else {
			rdb := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
			} else {
				c.rdb = rdb
			}
		}
	}

	searchCache = c
	slog.Info("cache: initialized",
		slog.Duration("ttl", ttl),
		slog.Bool("redis", c.rdb != nil),
	)
}

// CacheKey builds a deterministic key from parts.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("js:%x", hash[:12])
}

// CacheGet tries L1, then L2. An L2 hit repopulates L1.
func CacheGet(ctx context.Context, key string) (*SearchResult, bool) {
	if searchCache == nil {
		return nil, false
	}

	if val, ok := searchCache.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			var out SearchResult
			if json.Unmarshal(entry.data, &out) == nil {
				cacheHits.Add(1)
				return &out, true
			}
		}
		searchCache.l1.Delete(key) // expired or corrupt
	}

	if searchCache.rdb != nil {
		data, err := searchCache.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var out SearchResult
			if json.Unmarshal(data, &out) == nil {
				cacheHits.Add(1)
				searchCache.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(searchCache.ttl)})
				return &out, true
			}
		}
	}

	cacheMisses.Add(1)
	return nil, false
}

// CacheSet stores a result in both tiers.
func CacheSet(ctx context.Context, key string, value *SearchResult) {
	if searchCache == nil || value == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	searchCache.evictExpired()
	searchCache.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(searchCache.ttl)})

	if searchCache.rdb != nil {
		if err := searchCache.rdb.Set(ctx, key, data, searchCache.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// CacheStats returns current hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// evictExpired drops stale entries, then the earliest-expiring entries
// while the map is still over maxEntries. Short TTLs keep this cheap.
func (c *tieredCache) evictExpired() {
	if c.maxEntries <= 0 {
		return
	}
	count := 0
	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
			c.l1.Delete(key)
			return true
		}
		count++
		return true
	})

	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(24 * time.Hour)
		c.l1.Range(func(key, val any) bool {
			if entry, ok := val.(*cacheEntry); ok && entry.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
