package engine

import "strings"

// MaxSuggestions caps the suggestion list length.
const MaxSuggestions = 6

// Suggest returns at most MaxSuggestions ranked completions for a
// partial phrase: direct title matches first, then direct location
// matches, then synthesized "{title} {location}" combinations. Ties keep
// the original list order — this is a ranking, not a relevance score.
func Suggest(partial string, titles, locations []string) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	tokens := strings.Fields(partial)

	var matchedTitles, matchedLocations []string
	for _, t := range titles {
		if partial == "" || strings.Contains(strings.ToLower(t), partial) {
			matchedTitles = append(matchedTitles, t)
		}
	}
	for _, l := range locations {
		if partial == "" || strings.Contains(strings.ToLower(l), partial) {
			matchedLocations = append(matchedLocations, l)
		}
	}

	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]bool)
	add := func(s string) bool {
		if seen[s] {
			return len(out) < MaxSuggestions
		}
		seen[s] = true
		out = append(out, s)
		return len(out) < MaxSuggestions
	}

	for _, t := range matchedTitles {
		if !add(t) {
			return out
		}
	}
	for _, l := range matchedLocations {
		if !add(l) {
			return out
		}
	}

	// Combinations: each side must independently contain at least one
	// input token, so "engineer lon" pairs titles matching "engineer"
	// with locations matching "lon".
	for _, t := range titles {
		if !containsAnyToken(t, tokens) {
			continue
		}
		for _, l := range locations {
			if !containsAnyToken(l, tokens) {
				continue
			}
			if !add(t + " " + l) {
				return out
			}
		}
	}
	return out
}

func containsAnyToken(s string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(s)
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
