package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeBackend returns a scripted response, standing in for a store.
type fakeBackend struct {
	result *RetrievalResult
	err    error
	calls  int
}

func (f *fakeBackend) Retrieve(_ context.Context, _ *FilterSpec) (*RetrievalResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestEngine(t *testing.T, backend Backend) *Engine {
	t.Helper()
	Init(Config{SynthSeed: 7})
	InitCache("", 30*time.Second, 100)
	return New(backend)
}

func TestSearch_EmptyBackendSynthesizesFullPage(t *testing.T) {
	eng := newTestEngine(t, &fakeBackend{result: &RetrievalResult{}})
	spec := buildSpec(t, FilterInput{})

	res, err := eng.Search(context.Background(), &spec)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if !res.Synthesized {
		t.Error("expected synthesized result")
	}
	if len(res.Postings) != PageSize {
		t.Errorf("postings = %d, want %d", len(res.Postings), PageSize)
	}
	for i := range res.Postings {
		if res.Postings[i].Status != StatusActive {
			t.Errorf("posting %s status = %s, want active", res.Postings[i].ID, res.Postings[i].Status)
		}
	}
	// Default sort: createdAt descending.
	for i := 1; i < len(res.Postings); i++ {
		if res.Postings[i].CreatedAt.After(res.Postings[i-1].CreatedAt) {
			t.Errorf("postings not sorted by createdAt desc at index %d", i)
		}
	}
}

func TestSearch_ConstrainedComboReturnsAtLeastFloor(t *testing.T) {
	eng := newTestEngine(t, &fakeBackend{result: &RetrievalResult{}})
	spec := buildSpec(t, FilterInput{
		JobLevels:       []string{"senior"},
		EmploymentTypes: []string{"full_time"},
		OnsiteTypes:     []string{"remote"},
	})

	res, err := eng.Search(context.Background(), &spec)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(res.Postings) < MinPerCombination {
		t.Errorf("postings = %d, want >= %d", len(res.Postings), MinPerCombination)
	}
	for i := range res.Postings {
		p := &res.Postings[i]
		if p.JobLevel != LevelSenior || p.EmploymentType != FullTime || p.OnsiteType != Remote {
			t.Errorf("posting %s has wrong facets: %s/%s/%s", p.ID, p.JobLevel, p.EmploymentType, p.OnsiteType)
		}
	}
}

func TestSearch_RealResultsPassThrough(t *testing.T) {
	var postings []JobPosting
	for i := 0; i < PageSize; i++ {
		p := samplePosting()
		p.ID = string(rune('a' + i))
		postings = append(postings, p)
	}
	backend := &fakeBackend{result: &RetrievalResult{Postings: postings, Total: 120}}
	eng := newTestEngine(t, backend)
	spec := buildSpec(t, FilterInput{})

	res, err := eng.Search(context.Background(), &spec)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res.Synthesized {
		t.Error("full backend response must not be synthesized")
	}
	if res.TotalCount != 120 {
		t.Errorf("totalCount = %d, want 120", res.TotalCount)
	}
	if len(res.Postings) != PageSize {
		t.Errorf("postings = %d, want %d", len(res.Postings), PageSize)
	}
}

func TestSearch_UnderfilledConstrainedTriggersSynthesis(t *testing.T) {
	// Two real matches for a constrained spec is below the floor of 3.
	p := samplePosting()
	p.OnsiteType = Remote
	backend := &fakeBackend{result: &RetrievalResult{Postings: []JobPosting{p, p}, Total: 2}}
	eng := newTestEngine(t, backend)
	spec := buildSpec(t, FilterInput{OnsiteTypes: []string{"remote"}})

	res, err := eng.Search(context.Background(), &spec)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if !res.Synthesized {
		t.Error("under-filled constrained result should synthesize")
	}
}

func TestSearch_RetrievalErrorPropagatesWithoutSynthesis(t *testing.T) {
	backend := &fakeBackend{err: &RetrievalError{Op: "query", Err: errors.New("connection refused")}}
	eng := newTestEngine(t, backend)
	spec := buildSpec(t, FilterInput{})

	res, err := eng.Search(context.Background(), &spec)
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
	if res != nil {
		t.Error("failed retrieval must not return synthesized results")
	}
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Errorf("error %v should unwrap to RetrievalError", err)
	}
}

func TestSearch_CachesResults(t *testing.T) {
	backend := &fakeBackend{result: &RetrievalResult{}}
	eng := newTestEngine(t, backend)
	spec := buildSpec(t, FilterInput{FreeText: "cached query probe"})

	if _, err := eng.Search(context.Background(), &spec); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := eng.Search(context.Background(), &spec); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1 (second hit served from cache)", backend.calls)
	}
}

func TestSearch_PaginationOfSynthesizedCorpus(t *testing.T) {
	eng := newTestEngine(t, &fakeBackend{result: &RetrievalResult{}})

	seen := make(map[string]bool)
	total := 0
	for page := 1; ; page++ {
		spec := buildSpec(t, FilterInput{Page: page})
		res, err := eng.Search(context.Background(), &spec)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if total == 0 {
			total = res.TotalCount
		}
		if len(res.Postings) == 0 {
			break
		}
		for i := range res.Postings {
			id := res.Postings[i].ID
			if seen[id] {
				t.Fatalf("duplicate posting %s on page %d", id, page)
			}
			seen[id] = true
		}
	}
	if len(seen) != total {
		t.Errorf("concatenated pages = %d postings, want totalCount %d", len(seen), total)
	}
}
