package engine

import (
	"reflect"
	"testing"
)

var (
	suggestTitles    = []string{"Software Engineer", "Backend Developer", "Data Engineer"}
	suggestLocations = []string{"London", "Berlin", "Remote"}
)

func TestSuggest_DirectTitleMatchesFirst(t *testing.T) {
	got := Suggest("engineer", suggestTitles, suggestLocations)
	want := []string{
		"Software Engineer",
		"Data Engineer",
		// No location contains "engineer", so no direct location matches
		// and no combinations either.
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(engineer) = %v, want %v", got, want)
	}
}

func TestSuggest_LocationsAfterTitles(t *testing.T) {
	got := Suggest("er", suggestTitles, suggestLocations)
	// All three titles contain "er", and "Berlin" does too.
	if len(got) < 4 {
		t.Fatalf("Suggest(er) = %v, want >= 4 entries", got)
	}
	if got[0] != "Software Engineer" || got[3] != "Berlin" {
		t.Errorf("ordering wrong: %v", got)
	}
}

func TestSuggest_Combinations(t *testing.T) {
	got := Suggest("engineer london", suggestTitles, suggestLocations)
	// Neither list contains the full phrase, but titles matching
	// "engineer" pair with locations matching "london".
	want := []string{
		"Software Engineer London",
		"Data Engineer London",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(engineer london) = %v, want %v", got, want)
	}
}

func TestSuggest_CapAtSix(t *testing.T) {
	titles := []string{"A Dev", "B Dev", "C Dev", "D Dev", "E Dev"}
	locations := []string{"Devon", "Devizes", "Devauden"}
	got := Suggest("dev", titles, locations)
	if len(got) != MaxSuggestions {
		t.Errorf("len = %d, want %d: %v", len(got), MaxSuggestions, got)
	}
}

func TestSuggest_NoDuplicates(t *testing.T) {
	got := Suggest("dev", []string{"Dev", "Dev"}, []string{"Devon"})
	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate suggestion %q in %v", s, got)
		}
		seen[s] = true
	}
}

func TestSuggest_EmptyPartial(t *testing.T) {
	got := Suggest("", suggestTitles, suggestLocations)
	// Empty input matches both full lists, in order, capped at six, with
	// no combinations (no input tokens).
	want := []string{
		"Software Engineer", "Backend Developer", "Data Engineer",
		"London", "Berlin", "Remote",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(\"\") = %v, want %v", got, want)
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	got := Suggest("LONDON", suggestTitles, suggestLocations)
	if len(got) == 0 || got[0] != "London" {
		t.Errorf("Suggest(LONDON) = %v, want London first", got)
	}
}

func TestSuggest_NoMatches(t *testing.T) {
	got := Suggest("zzzz", suggestTitles, suggestLocations)
	if len(got) != 0 {
		t.Errorf("Suggest(zzzz) = %v, want empty", got)
	}
}
