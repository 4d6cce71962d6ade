package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests       atomic.Int64
	RetrievalErrors      atomic.Int64
	SynthesizedResponses atomic.Int64
	HistoryWrites        atomic.Int64
}

// IncrHistoryWrites increments the history write counter.
func IncrHistoryWrites() { metrics.HistoryWrites.Add(1) }

// GetMetrics returns a snapshot of all counters including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":       metrics.SearchRequests.Load(),
		"retrieval_errors":      metrics.RetrievalErrors.Load(),
		"synthesized_responses": metrics.SynthesizedResponses.Load(),
		"history_writes":        metrics.HistoryWrites.Load(),
		"cache_hits":            hits,
		"cache_misses":          misses,
	}
}

// FormatMetrics returns the counters as plain text, one per line.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range []string{
		"search_requests", "retrieval_errors", "synthesized_responses",
		"history_writes", "cache_hits", "cache_misses",
	} {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
