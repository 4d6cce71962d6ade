package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Synthesizer generates representative postings when the backing store
// cannot satisfy a request. It guarantees at least MinPerCombination
// postings for every facet combination a spec selects. Generation is
// pure and bounded by the injected lists, so it never fails.
//
// Each Generate call runs on its own seeded random stream: the same
// spec always yields the same corpus, pages of one query line up, and
// concurrent invocations share no mutable state.
type Synthesizer struct {
	cities    []string
	companies []string
	titles    map[JobLevel][]string
	seed      int64
	now       time.Time
}

// NewSynthesizer builds a Synthesizer from the engine config. A non-zero
// SynthSeed makes generation reproducible across processes.
func NewSynthesizer(c *Config) *Synthesizer {
	seed := c.SynthSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthesizer{
		cities:    c.SynthCities,
		companies: c.SynthCompanies,
		titles:    c.SynthTitles,
		seed:      seed,
		now:       time.Now().UTC(),
	}
}

// genState is the per-call generation state.
type genState struct {
	*Synthesizer
	rnd *rand.Rand
	seq int
}

func (s *Synthesizer) newRun() *genState {
	return &genState{Synthesizer: s, rnd: rand.New(rand.NewSource(s.seed))}
}

// Generate produces a synthesized corpus satisfying spec. Three phases:
// base generation over the full facet cross-product, a filter pass with
// the shared predicate semantics, and a per-combination coverage top-up
// that embeds the free-text terms so the text predicate always passes.
// The returned set is unsorted and unpaginated; Search applies the
// sorter/paginator.
func (s *Synthesizer) Generate(spec *FilterSpec) []JobPosting {
	g := s.newRun()

	var base []JobPosting
	for _, level := range JobLevels {
		for _, et := range EmploymentTypes {
			for _, ot := range OnsiteTypes {
				for i := 0; i < MinPerCombination; i++ {
					base = append(base, g.posting(level, et, ot))
				}
			}
		}
	}

	var out []JobPosting
	for i := range base {
		if spec.Matches(&base[i]) {
			out = append(out, base[i])
		}
	}

	// Coverage top-up over the combinations the spec selects. An
	// unconstrained dimension expands to all of its values.
	levels := spec.JobLevels
	if len(levels) == 0 {
		levels = JobLevels
	}
	ets := spec.EmploymentTypes
	if len(ets) == 0 {
		ets = EmploymentTypes
	}
	ots := spec.OnsiteTypes
	if len(ots) == 0 {
		ots = OnsiteTypes
	}
	// A "remote" location term can only be satisfied by remote postings:
	// onsite and hybrid locations render as plain city names, so topping
	// those combinations up would append postings the spec rejects.
	if strings.EqualFold(spec.LocationTerm, "remote") {
		var satisfiable []OnsiteType
		for _, ot := range ots {
			if ot == Remote {
				satisfiable = append(satisfiable, ot)
			}
		}
		ots = satisfiable
	}

	counts := make(map[comboKey]int)
	for i := range out {
		counts[comboKey{out[i].JobLevel, out[i].EmploymentType, out[i].OnsiteType}]++
	}
	for _, level := range levels {
		for _, et := range ets {
			for _, ot := range ots {
				key := comboKey{level, et, ot}
				for counts[key] < MinPerCombination {
					out = append(out, g.targeted(level, et, ot, spec))
					counts[key]++
				}
			}
		}
	}
	return out
}

type comboKey struct {
	level JobLevel
	et    EmploymentType
	ot    OnsiteType
}

// posting synthesizes one base posting for the given facet combination.
func (g *genState) posting(level JobLevel, et EmploymentType, ot OnsiteType) JobPosting {
	title := pick(g.rnd, g.titles[level])
	city := pick(g.rnd, g.cities)
	location, locations := g.renderLocation(city, ot)

	band := synthSalaryBands[level]
	// Jitter stays inside a quarter of the band from each edge, so
	// SalaryMin can never cross SalaryMax.
	jitter := (band.Max - band.Min) / 4
	salaryMin := band.Min + g.rnd.Intn(jitter+1)
	salaryMax := band.Max - g.rnd.Intn(jitter+1)

	created := g.now.Add(-time.Duration(g.rnd.Intn(45*24)) * time.Hour)
	g.seq++
	return JobPosting{
		ID:          fmt.Sprintf("synth-%04d", g.seq),
		Title:       title,
		Description: fmt.Sprintf("%s role (%s, %s) at a growing team in %s.", title, et, ot, city),
		Location:    location,
		Locations:   locations,

		EmploymentType: et,
		JobLevel:       level,
		OnsiteType:     ot,

		SalaryMin: salaryMin,
		SalaryMax: salaryMax,
		Currency:  "EUR",

		Status:    StatusActive,
		CreatedAt: created,
		UpdatedAt: created,
		EndDate:   g.now.Add(30 * 24 * time.Hour),
		City:      city,

		// Synthetic markers: consumers can tell filler from inventory.
		MatchPercentage: 85 + g.rnd.Intn(15),
		IsHighPriority:  true,
		IsBoosted:       true,

		Company: Company{
			Name:     pick(g.rnd, g.companies),
			Industry: "Technology",
			PlanTier: "demo",
		},
	}
}

// targeted synthesizes a posting constructed to satisfy one facet
// combination and the spec's text and salary constraints exactly.
func (g *genState) targeted(level JobLevel, et EmploymentType, ot OnsiteType, spec *FilterSpec) JobPosting {
	p := g.posting(level, et, ot)

	// Embed the search term so the text predicate always passes.
	if term := spec.TitleTerm; term != "" {
		p.Title = fmt.Sprintf("%s — %s", titleCase(term), p.Title)
		p.Description = fmt.Sprintf("Looking for a %s. %s", term, p.Description)
	} else if spec.FreeText != "" {
		p.Title = fmt.Sprintf("%s — %s", titleCase(spec.FreeText), p.Title)
	}
	if term := spec.LocationTerm; term != "" && !strings.EqualFold(term, "remote") {
		city := titleCase(term)
		p.City = city
		p.Location = city
		if ot == Remote {
			p.Location = city + " (Remote)"
		}
		p.Locations = []string{p.Location}
	}

	// Keep the salary inside both the level band and the spec range.
	band := synthSalaryBands[level]
	lo, hi := max(band.Min, spec.SalaryMin), min(band.Max, spec.SalaryMax)
	if lo > hi {
		lo, hi = spec.SalaryMin, spec.SalaryMax
	}
	p.SalaryMin, p.SalaryMax = lo, hi

	if spec.CountryCode != "" {
		p.Country = spec.CountryCode
	}
	return p
}

// renderLocation varies display text by onsite type: remote postings
// read "Remote" or "{city} (Remote)", others "{city}" or occasionally a
// two-site "{cityA} & {cityB}".
func (g *genState) renderLocation(city string, ot OnsiteType) (string, []string) {
	if ot == Remote {
		if g.rnd.Intn(2) == 0 {
			return "Remote", []string{"Remote"}
		}
		loc := city + " (Remote)"
		return loc, []string{loc}
	}
	if g.rnd.Intn(5) == 0 {
		other := pick(g.rnd, g.cities)
		if other != city {
			return city + " & " + other, []string{city, other}
		}
	}
	return city, []string{city}
}

func pick(rnd *rand.Rand, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rnd.Intn(len(list))]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
