package engine

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("search", "k=v")
	b := CacheKey("search", "k=v")
	c := CacheKey("search", "k=w")

	if a != b {
		t.Errorf("same parts produced different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different parts produced the same key")
	}
	if !strings.HasPrefix(a, "js:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	InitCache("", time.Minute, 10)
	ctx := context.Background()

	in := &SearchResult{
		Postings:    []JobPosting{{ID: "p1", Title: "Engineer"}},
		TotalCount:  42,
		Synthesized: true,
	}
	key := CacheKey("search", "roundtrip")
	CacheSet(ctx, key, in)

	out, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if out.TotalCount != 42 || !out.Synthesized || len(out.Postings) != 1 || out.Postings[0].ID != "p1" {
		t.Errorf("roundtrip mismatch: %+v", out)
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	InitCache("", time.Minute, 10)
	if _, ok := CacheGet(context.Background(), CacheKey("search", "never set")); ok {
		t.Error("unexpected hit for unknown key")
	}
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	InitCache("", 10*time.Millisecond, 10)
	ctx := context.Background()

	key := CacheKey("search", "short-lived")
	CacheSet(ctx, key, &SearchResult{TotalCount: 1})

	if _, ok := CacheGet(ctx, key); !ok {
		t.Fatal("expected hit before TTL")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected miss after TTL")
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	InitCache("", time.Minute, 3)
	ctx := context.Background()

	for _, part := range []string{"a", "b", "c", "d", "e"} {
		CacheSet(ctx, CacheKey("search", part), &SearchResult{TotalCount: 1})
	}

	count := 0
	for _, part := range []string{"a", "b", "c", "d", "e"} {
		if _, ok := CacheGet(ctx, CacheKey("search", part)); ok {
			count++
		}
	}
	if count > 3 {
		t.Errorf("cache holds %d entries, capacity 3", count)
	}
}
