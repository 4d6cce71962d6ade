package engine

import "time"

// EmploymentType is the contract dimension of a posting.
type EmploymentType string

const (
	FullTime   EmploymentType = "full_time"
	PartTime   EmploymentType = "part_time"
	Contract   EmploymentType = "contract"
	Temporary  EmploymentType = "temporary"
	Internship EmploymentType = "internship"
	JobShare   EmploymentType = "job_share"
)

// EmploymentTypes lists all valid employment types.
var EmploymentTypes = []EmploymentType{FullTime, PartTime, Contract, Temporary, Internship, JobShare}

// JobLevel is the seniority dimension of a posting.
type JobLevel string

const (
	LevelEntry     JobLevel = "entry"
	LevelJunior    JobLevel = "junior"
	LevelMid       JobLevel = "mid"
	LevelSenior    JobLevel = "senior"
	LevelExecutive JobLevel = "executive"
)

// JobLevels lists all valid job levels.
var JobLevels = []JobLevel{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelExecutive}

// OnsiteType is the work-location dimension of a posting.
type OnsiteType string

const (
	Onsite OnsiteType = "onsite"
	Hybrid OnsiteType = "hybrid"
	Remote OnsiteType = "remote"
)

// OnsiteTypes lists all valid onsite types.
var OnsiteTypes = []OnsiteType{Onsite, Hybrid, Remote}

// Status is the lifecycle state of a posting. Only active postings are
// searchable.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusClosed  Status = "closed"
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortSalary    SortKey = "salary"
)

// ParseEmploymentType validates a raw facet value.
func ParseEmploymentType(s string) (EmploymentType, bool) {
	switch EmploymentType(s) {
	case FullTime, PartTime, Contract, Temporary, Internship, JobShare:
		return EmploymentType(s), true
	}
	return "", false
}

// ParseJobLevel validates a raw facet value.
func ParseJobLevel(s string) (JobLevel, bool) {
	switch JobLevel(s) {
	case LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelExecutive:
		return JobLevel(s), true
	}
	return "", false
}

// ParseOnsiteType validates a raw facet value.
func ParseOnsiteType(s string) (OnsiteType, bool) {
	switch OnsiteType(s) {
	case Onsite, Hybrid, Remote:
		return OnsiteType(s), true
	}
	return "", false
}

// ParseSortKey validates a raw sort key, falling back to date ordering.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRelevance, SortDate, SortSalary:
		return SortKey(s)
	}
	return SortDate
}

// Company is denormalized onto a posting for display. Read-only here.
type Company struct {
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	PlanTier    string `json:"plan_tier,omitempty"`
}

// JobPosting is the unit returned by the engine.
type JobPosting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Locations   []string `json:"locations"` // >= 1; first equals Location for single-site postings

	EmploymentType EmploymentType `json:"employment_type"`
	JobLevel       JobLevel       `json:"job_level"`
	OnsiteType     OnsiteType     `json:"onsite_type"`

	SalaryMin int    `json:"salary_min,omitempty"`
	SalaryMax int    `json:"salary_max,omitempty"`
	Currency  string `json:"currency,omitempty"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	EndDate   time.Time `json:"end_date,omitempty"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`

	MatchPercentage int  `json:"match_percentage"` // 0–100, computed by an external scorer
	IsHighPriority  bool `json:"is_high_priority"`
	IsBoosted       bool `json:"is_boosted"`

	Company Company `json:"company"`
}

// HasSalary reports whether the posting carries salary data.
func (p *JobPosting) HasSalary() bool {
	return p.SalaryMin > 0 || p.SalaryMax > 0
}

// SearchResult is the engine's outbound contract: one page of postings
// plus the authoritative (or synthesized) total.
type SearchResult struct {
	Postings    []JobPosting `json:"postings"`
	TotalCount  int          `json:"total_count"`
	Synthesized bool         `json:"synthesized,omitempty"`
}
