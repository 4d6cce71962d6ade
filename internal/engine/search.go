package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend is the persistence collaborator. Retrieve translates the spec
// into the store's query form and returns one page of matching postings
// plus the authoritative total. A nil error with zero results is a
// valid, displayable state — not a failure.
type Backend interface {
	Retrieve(ctx context.Context, spec *FilterSpec) (*RetrievalResult, error)
}

// RetrievalResult is a successful backend response.
type RetrievalResult struct {
	Postings []JobPosting
	Total    int
}

// RetrievalError means the store could not be queried at all
// (connectivity, backend fault). It is surfaced verbatim to the caller;
// the synthesizer is never used to mask it.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("retrieval %s: %v", e.Op, e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// Engine runs the query pipeline: filter spec → backend → synthesizer
// fallback → sorter/paginator. Each invocation is an independent pure
// computation; the engine holds no mutable per-request state.
type Engine struct {
	backend Backend
	synth   *Synthesizer
}

// New builds an Engine over a backend. Call Init before New.
func New(backend Backend) *Engine {
	return &Engine{backend: backend, synth: NewSynthesizer(Cfg)}
}

// Search executes one request. Retrieval errors propagate; empty or
// under-filled results fall through to the corpus synthesizer so every
// caller receives a usable result set.
func (e *Engine) Search(ctx context.Context, spec *FilterSpec) (*SearchResult, error) {
	metrics.SearchRequests.Add(1)

	key := CacheKey("search", spec.Key())
	if cached, ok := CacheGet(ctx, key); ok {
		return cached, nil
	}

	res, err := e.backend.Retrieve(ctx, spec)
	if err != nil {
		metrics.RetrievalErrors.Add(1)
		slog.Warn("search: backend error", slog.Any("error", err))
		return nil, fmt.Errorf("search: %w", err)
	}

	if !underfilled(spec, res) {
		out := &SearchResult{Postings: res.Postings, TotalCount: res.Total}
		CacheSet(ctx, key, out)
		return out, nil
	}

	metrics.SynthesizedResponses.Add(1)
	slog.Info("search: synthesizing corpus",
		slog.Int("backend_total", res.Total),
		slog.String("spec", spec.Key()),
	)

	corpus := e.synth.Generate(spec)
	SortPostings(corpus, spec.SortKey)
	out := &SearchResult{
		Postings:    Paginate(corpus, spec.Page),
		TotalCount:  len(corpus),
		Synthesized: true,
	}
	CacheSet(ctx, key, out)
	return out, nil
}

// underfilled decides whether the backend response triggers synthesis:
// fewer postings than a page for an unconstrained fetch-all, or fewer
// than the per-combination floor for a constrained spec. The floor is
// checked against the aggregate total: with a multi-value facet set one
// combination can sit at zero while others carry the total past the
// floor, and no synthesis happens. The coverage guarantee binds
// single-combination specs; aggregate counting keeps the backend to one
// count query.
func underfilled(spec *FilterSpec, res *RetrievalResult) bool {
	if spec.Unconstrained() {
		return res.Total < PageSize
	}
	return res.Total < MinPerCombination
}
