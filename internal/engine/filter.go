package engine

import (
	"fmt"
	"sort"
	"strings"
)

// FilterSpec is the validated, canonical representation of all search
// constraints. Immutable once built; constructed per request and
// consumed once.
type FilterSpec struct {
	FreeText     string
	TitleTerm    string
	LocationTerm string

	// Empty facet set = "match any value of this facet".
	EmploymentTypes []EmploymentType
	JobLevels       []JobLevel
	OnsiteTypes     []OnsiteType

	SalaryMin int
	SalaryMax int

	CountryCode string
	SortKey     SortKey
	Page        int
}

// FilterInput is the raw UI payload the builder normalizes. Unknown
// facet values are dropped silently; a single bad checkbox never fails
// the whole request.
type FilterInput struct {
	FreeText        string
	EmploymentTypes []string
	JobLevels       []string
	OnsiteTypes     []string
	SalaryMin       int
	SalaryMax       int
	SalaryRangeSet  bool // false = use the [0, SalaryCeiling] default
	CountryCode     string
	SortKey         string
	Page            int
}

// BuildFilterSpec validates raw input into a FilterSpec. It never
// rejects recoverable input: page is clamped to >= 1, an inverted
// salary range is swapped, and unknown facet values are dropped.
func BuildFilterSpec(in FilterInput, gaz Gazetteer) FilterSpec {
	spec := FilterSpec{
		FreeText:    strings.TrimSpace(in.FreeText),
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
		SortKey:     ParseSortKey(strings.ToLower(strings.TrimSpace(in.SortKey))),
		Page:        in.Page,
	}
	if spec.Page < 1 {
		spec.Page = 1
	}

	spec.TitleTerm, spec.LocationTerm = SplitQuery(spec.FreeText, gaz)

	for _, raw := range in.EmploymentTypes {
		if v, ok := ParseEmploymentType(strings.ToLower(strings.TrimSpace(raw))); ok {
			spec.EmploymentTypes = append(spec.EmploymentTypes, v)
		}
	}
	for _, raw := range in.JobLevels {
		if v, ok := ParseJobLevel(strings.ToLower(strings.TrimSpace(raw))); ok {
			spec.JobLevels = append(spec.JobLevels, v)
		}
	}
	for _, raw := range in.OnsiteTypes {
		if v, ok := ParseOnsiteType(strings.ToLower(strings.TrimSpace(raw))); ok {
			spec.OnsiteTypes = append(spec.OnsiteTypes, v)
		}
	}

	spec.SalaryMin, spec.SalaryMax = in.SalaryMin, in.SalaryMax
	if !in.SalaryRangeSet {
		spec.SalaryMin, spec.SalaryMax = 0, SalaryCeiling
	}
	if spec.SalaryMin < 0 {
		spec.SalaryMin = 0
	}
	if spec.SalaryMax < 0 {
		spec.SalaryMax = 0
	}
	if spec.SalaryMin > spec.SalaryMax {
		spec.SalaryMin, spec.SalaryMax = spec.SalaryMax, spec.SalaryMin
	}

	return spec
}

// Unconstrained reports whether the spec is a plain "fetch all" request:
// no text, no facet, no country, and the default salary range.
func (s *FilterSpec) Unconstrained() bool {
	return s.FreeText == "" &&
		len(s.EmploymentTypes) == 0 && len(s.JobLevels) == 0 && len(s.OnsiteTypes) == 0 &&
		s.CountryCode == "" && s.SalaryMin == 0 && s.SalaryMax >= SalaryCeiling
}

// Offset returns the zero-based slice offset for the requested page.
func (s *FilterSpec) Offset() int {
	return (s.Page - 1) * PageSize
}

// Key returns a deterministic canonical form of the spec, used for
// cache keys. Facet order does not matter.
func (s *FilterSpec) Key() string {
	et := make([]string, len(s.EmploymentTypes))
	for i, v := range s.EmploymentTypes {
		et[i] = string(v)
	}
	jl := make([]string, len(s.JobLevels))
	for i, v := range s.JobLevels {
		jl[i] = string(v)
	}
	ot := make([]string, len(s.OnsiteTypes))
	for i, v := range s.OnsiteTypes {
		ot[i] = string(v)
	}
	sort.Strings(et)
	sort.Strings(jl)
	sort.Strings(ot)
	return fmt.Sprintf("q=%s|et=%s|jl=%s|ot=%s|sal=%d-%d|cc=%s|sort=%s|page=%d",
		strings.ToLower(s.FreeText), strings.Join(et, ","), strings.Join(jl, ","),
		strings.Join(ot, ","), s.SalaryMin, s.SalaryMax, s.CountryCode, s.SortKey, s.Page)
}

// Matches applies the full spec to one posting with the same predicate
// semantics the SQL backends use: case-insensitive substring text
// predicates, set membership per facet (empty set matches any value),
// salary interval overlap, and country equality. Only active postings
// match.
func (s *FilterSpec) Matches(p *JobPosting) bool {
	if p.Status != StatusActive {
		return false
	}

	if s.TitleTerm != "" || s.LocationTerm != "" {
		if s.TitleTerm != "" && !containsFold(p.Title, s.TitleTerm) && !containsFold(p.Description, s.TitleTerm) {
			return false
		}
		if s.LocationTerm != "" && !locationMatches(p, s.LocationTerm) {
			return false
		}
	} else if s.FreeText != "" {
		if !containsFold(p.Title, s.FreeText) && !containsFold(p.Description, s.FreeText) && !locationMatches(p, s.FreeText) {
			return false
		}
	}

	if len(s.EmploymentTypes) > 0 && !containsET(s.EmploymentTypes, p.EmploymentType) {
		return false
	}
	if len(s.JobLevels) > 0 && !containsJL(s.JobLevels, p.JobLevel) {
		return false
	}
	if len(s.OnsiteTypes) > 0 && !containsOT(s.OnsiteTypes, p.OnsiteType) {
		return false
	}

	if p.HasSalary() {
		if p.SalaryMax < s.SalaryMin || p.SalaryMin > s.SalaryMax {
			return false
		}
	} else if s.SalaryMin > 0 {
		// No salary data only passes an unconstrained lower bound.
		return false
	}

	if s.CountryCode != "" && !strings.EqualFold(p.Country, s.CountryCode) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func locationMatches(p *JobPosting, term string) bool {
	if containsFold(p.Location, term) || containsFold(p.City, term) {
		return true
	}
	for _, loc := range p.Locations {
		if containsFold(loc, term) {
			return true
		}
	}
	return false
}

func containsET(set []EmploymentType, v EmploymentType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsJL(set []JobLevel, v JobLevel) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsOT(set []OnsiteType, v OnsiteType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
