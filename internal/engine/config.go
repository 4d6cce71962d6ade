package engine

import "time"

// PageSize is the fixed page length for every search response.
const PageSize = 20

// SalaryCeiling is the default upper bound of an unconstrained salary range.
const SalaryCeiling = 250000

// MinPerCombination is the coverage floor the synthesizer guarantees for
// every requested facet combination.
const MinPerCombination = 3

// Config holds all engine configuration, injected from main.
// The dictionaries are injected rather than package-level constants so
// the engine stays deterministic and testable without environment coupling.
type Config struct {
	// Gazetteer entries classify free-text tokens as locations.
	// Matching is exact, case-insensitive, single-token.
	Gazetteer []string

	// Curated dictionaries for the suggestion ranker.
	SuggestTitles    []string
	SuggestLocations []string

	// Source lists for the corpus synthesizer.
	SynthCities    []string
	SynthCompanies []string
	SynthTitles    map[JobLevel][]string

	// Seed for the synthesizer's jitter. Zero means time-seeded.
	SynthSeed int64

	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
}

var cfg Config

// Cfg exposes the engine configuration for collaborators.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration, filling
// empty dictionaries from the built-in defaults.
func Init(c Config) {
	if len(c.Gazetteer) == 0 {
		c.Gazetteer = DefaultGazetteer
	}
	if len(c.SuggestTitles) == 0 {
		c.SuggestTitles = DefaultSuggestTitles
	}
	if len(c.SuggestLocations) == 0 {
		c.SuggestLocations = DefaultSuggestLocations
	}
	if len(c.SynthCities) == 0 {
		c.SynthCities = DefaultSynthCities
	}
	if len(c.SynthCompanies) == 0 {
		c.SynthCompanies = DefaultSynthCompanies
	}
	if len(c.SynthTitles) == 0 {
		c.SynthTitles = DefaultSynthTitles
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = 1000
	}
	cfg = c
	Cfg = &cfg
}

// DefaultGazetteer is the curated city/region list plus the literal
// "remote". Single-token entries only — multi-word names like
// "new york" never match the token-by-token classifier.
var DefaultGazetteer = []string{
	"london", "manchester", "birmingham", "leeds", "bristol", "edinburgh",
	"glasgow", "berlin", "munich", "hamburg", "amsterdam", "rotterdam",
	"paris", "lyon", "madrid", "barcelona", "lisbon", "dublin", "zurich",
	"vienna", "stockholm", "copenhagen", "oslo", "helsinki", "warsaw",
	"prague", "remote",
}

// DefaultSuggestTitles feeds the suggestion ranker.
var DefaultSuggestTitles = []string{
	"Software Engineer", "Backend Developer", "Frontend Developer",
	"Full Stack Developer", "Data Engineer", "Data Scientist",
	"DevOps Engineer", "Product Manager", "UX Designer", "QA Engineer",
	"Engineering Manager", "Site Reliability Engineer",
}

// DefaultSuggestLocations feeds the suggestion ranker.
var DefaultSuggestLocations = []string{
	"London", "Berlin", "Amsterdam", "Paris", "Madrid", "Dublin",
	"Zurich", "Stockholm", "Remote",
}

// DefaultSynthCities seeds synthesized posting locations.
var DefaultSynthCities = []string{
	"London", "Berlin", "Amsterdam", "Paris", "Madrid", "Barcelona",
	"Dublin", "Zurich", "Vienna", "Stockholm", "Copenhagen", "Lisbon",
}

// DefaultSynthCompanies seeds synthesized posting companies.
var DefaultSynthCompanies = []string{
	"Nimbus Labs", "Vectorial", "Bluegrain", "Kitefin Systems",
	"Northbeam", "Quanta Works", "Helioscope", "Draftline",
	"Mosaic Digital", "Ferrostack",
}

// DefaultSynthTitles maps each level to plausible titles.
var DefaultSynthTitles = map[JobLevel][]string{
	LevelEntry:     {"Graduate Software Engineer", "Trainee Developer", "Engineering Intern Coordinator"},
	LevelJunior:    {"Junior Software Engineer", "Junior Backend Developer", "Junior QA Engineer"},
	LevelMid:       {"Software Engineer", "Backend Developer", "Full Stack Developer"},
	LevelSenior:    {"Senior Software Engineer", "Senior Backend Developer", "Staff Engineer"},
	LevelExecutive: {"VP of Engineering", "Head of Platform", "Chief Technology Officer"},
}

// synthSalaryBands maps each level to its base salary range. Jitter is
// bounded so SalaryMin never crosses SalaryMax.
var synthSalaryBands = map[JobLevel]struct{ Min, Max int }{
	LevelEntry:     {24000, 34000},
	LevelJunior:    {32000, 46000},
	LevelMid:       {48000, 70000},
	LevelSenior:    {70000, 105000},
	LevelExecutive: {110000, 180000},
}
