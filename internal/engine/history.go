package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxRecentSearches caps the per-user history list.
const MaxRecentSearches = 10

// History records accepted free-text phrases, most-recent-first, keyed
// by user/session. Backed by a Redis list when a client is available;
// falls back to process-local memory otherwise so the engine stays
// usable without infrastructure.
type History struct {
	rdb *redis.Client

	mu  sync.Mutex
	mem map[string][]string
}

// NewHistory builds a History. redisURL can be empty for memory-only.
func NewHistory(redisURL string) *History {
	h := &History{mem: make(map[string][]string)}
	if redisURL == "" {
		return h
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("history: invalid redis URL, using memory", slog.Any("error", err))
		return h
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("history: redis unreachable, using memory", slog.Any("error", err))
		return h
	}
	h.rdb = rdb
	return h
}

func historyKey(userID string) string {
	return fmt.Sprintf("recent_searches:%s", userID)
}

// Record prepends phrase to the user's list, deduplicating an earlier
// occurrence and trimming to MaxRecentSearches.
func (h *History) Record(ctx context.Context, userID, phrase string) error {
	if phrase == "" {
		return nil
	}

	if h.rdb != nil {
		key := historyKey(userID)
		pipe := h.rdb.TxPipeline()
		pipe.LRem(ctx, key, 0, phrase)
		pipe.LPush(ctx, key, phrase)
		pipe.LTrim(ctx, key, 0, MaxRecentSearches-1)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("history record: %w", err)
		}
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.mem[userID]
	next := make([]string, 0, len(list)+1)
	next = append(next, phrase)
	for _, p := range list {
		if p != phrase {
			next = append(next, p)
		}
	}
	if len(next) > MaxRecentSearches {
		next = next[:MaxRecentSearches]
	}
	h.mem[userID] = next
	return nil
}

// Recent returns the user's phrases, most recent first.
func (h *History) Recent(ctx context.Context, userID string) ([]string, error) {
	if h.rdb != nil {
		list, err := h.rdb.LRange(ctx, historyKey(userID), 0, MaxRecentSearches-1).Result()
		if err != nil {
			return nil, fmt.Errorf("history recent: %w", err)
		}
		return list, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.mem[userID]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}
