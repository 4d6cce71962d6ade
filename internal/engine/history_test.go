package engine

import (
	"context"
	"fmt"
	"testing"
)

func TestHistory_RecordMostRecentFirst(t *testing.T) {
	h := NewHistory("")
	ctx := context.Background()

	for _, phrase := range []string{"golang berlin", "data engineer", "sre london"} {
		if err := h.Record(ctx, "u1", phrase); err != nil {
			t.Fatalf("Record(%q): %v", phrase, err)
		}
	}

	got, err := h.Recent(ctx, "u1")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{"sre london", "data engineer", "golang berlin"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_DedupesRepeatedPhrase(t *testing.T) {
	h := NewHistory("")
	ctx := context.Background()

	for _, phrase := range []string{"a", "b", "a"} {
		if err := h.Record(ctx, "u1", phrase); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, _ := h.Recent(ctx, "u1")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestHistory_TrimsToMax(t *testing.T) {
	h := NewHistory("")
	ctx := context.Background()

	for i := 0; i < MaxRecentSearches+5; i++ {
		if err := h.Record(ctx, "u1", fmt.Sprintf("query %d", i)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, _ := h.Recent(ctx, "u1")
	if len(got) != MaxRecentSearches {
		t.Fatalf("len = %d, want %d", len(got), MaxRecentSearches)
	}
	if got[0] != fmt.Sprintf("query %d", MaxRecentSearches+4) {
		t.Errorf("newest = %q", got[0])
	}
}

func TestHistory_IgnoresEmptyPhrase(t *testing.T) {
	h := NewHistory("")
	ctx := context.Background()

	if err := h.Record(ctx, "u1", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, _ := h.Recent(ctx, "u1")
	if len(got) != 0 {
		t.Errorf("empty phrase recorded: %v", got)
	}
}

func TestHistory_IsolatedPerUser(t *testing.T) {
	h := NewHistory("")
	ctx := context.Background()

	_ = h.Record(ctx, "u1", "only for u1")
	got, _ := h.Recent(ctx, "u2")
	if len(got) != 0 {
		t.Errorf("u2 sees u1's history: %v", got)
	}
}
