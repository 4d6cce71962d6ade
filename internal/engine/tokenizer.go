package engine

import "strings"

// Gazetteer is a case-insensitive membership set of location tokens.
type Gazetteer map[string]bool

// NewGazetteer builds a Gazetteer from a list of entries.
func NewGazetteer(entries []string) Gazetteer {
	g := make(Gazetteer, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			g[e] = true
		}
	}
	return g
}

// Contains reports whether token is a known location (exact,
// case-insensitive). Substring matches deliberately do not count.
func (g Gazetteer) Contains(token string) bool {
	return g[strings.ToLower(token)]
}

// SplitQuery classifies each whitespace token of phrase as a location
// token (gazetteer member) or a title token, and reassembles both
// sub-queries in original token order. No token appears in both outputs.
//
// Known limitation: classification is single-token, so multi-word
// location names ("new york") are never recognized as locations.
func SplitQuery(phrase string, gaz Gazetteer) (titleTerm, locationTerm string) {
	var titleTokens, locationTokens []string
	for _, tok := range strings.Fields(strings.ToLower(phrase)) {
		if gaz.Contains(tok) {
			locationTokens = append(locationTokens, tok)
		} else {
			titleTokens = append(titleTokens, tok)
		}
	}
	return strings.Join(titleTokens, " "), strings.Join(locationTokens, " ")
}
