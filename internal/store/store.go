// Package store provides the persisted retrieval backends consumed by
// the engine: an embedded SQLite store and a PostgreSQL store with the
// same query contract. Both translate a FilterSpec into text, facet,
// salary, and country predicates plus a sort clause and offset/limit.
package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hireloop/jobsearch/internal/engine"
)

// orderClause maps a sort key to the SQL ORDER BY body. id ASC is the
// deterministic tie-break for equal primary keys.
func orderClause(key engine.SortKey) string {
	switch key {
	case engine.SortSalary:
		return "salary_max DESC, id ASC"
	case engine.SortRelevance:
		return "match_percentage DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

// encodeList serializes a string list column (locations).
func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func decodeList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

// encodeCompany serializes the denormalized company blob.
func encodeCompany(c engine.Company) string {
	b, _ := json.Marshal(c)
	return string(b)
}

func decodeCompany(s string) engine.Company {
	var c engine.Company
	if s != "" {
		_ = json.Unmarshal([]byte(s), &c)
	}
	return c
}

// normalize enforces the posting invariants at the write boundary:
// salaryMin <= salaryMax, a non-empty locations list whose first entry
// equals location, and UTC timestamps.
func normalize(p *engine.JobPosting, now time.Time) {
	if p.SalaryMin > p.SalaryMax && p.SalaryMax > 0 {
		p.SalaryMin, p.SalaryMax = p.SalaryMax, p.SalaryMin
	}
	if len(p.Locations) == 0 {
		if p.Location != "" {
			p.Locations = []string{p.Location}
		}
	} else if p.Location == "" {
		p.Location = p.Locations[0]
	}
	if p.Status == "" {
		p.Status = engine.StatusActive
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
}

// likePattern builds the case-insensitive substring pattern for a term.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
