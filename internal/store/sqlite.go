package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hireloop/jobsearch/internal/engine"
)

// SQLite is the embedded retrieval backend. One writer at a time; safe
// for concurrent readers.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the postings database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS postings (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		locations        TEXT NOT NULL DEFAULT '[]',
		employment_type  TEXT NOT NULL,
		job_level        TEXT NOT NULL,
		onsite_type      TEXT NOT NULL,
		salary_min       INTEGER NOT NULL DEFAULT 0,
		salary_max       INTEGER NOT NULL DEFAULT 0,
		currency         TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'active',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		end_date         TEXT NOT NULL DEFAULT '',
		country          TEXT NOT NULL DEFAULT '',
		city             TEXT NOT NULL DEFAULT '',
		match_percentage INTEGER NOT NULL DEFAULT 0,
		is_high_priority INTEGER NOT NULL DEFAULT 0,
		is_boosted       INTEGER NOT NULL DEFAULT 0,
		company          TEXT NOT NULL DEFAULT '{}'
	)`)
	return err
}

const postingColumns = `id, title, description, location, locations,
	employment_type, job_level, onsite_type, salary_min, salary_max,
	currency, status, created_at, updated_at, end_date, country, city,
	match_percentage, is_high_priority, is_boosted, company`

// Retrieve implements engine.Backend over SQLite.
func (s *SQLite) Retrieve(ctx context.Context, spec *engine.FilterSpec) (*engine.RetrievalResult, error) {
	where, args := buildSQLiteWhere(spec)

	var total int
	countQ := "SELECT COUNT(*) FROM postings WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, &engine.RetrievalError{Op: "sqlite count", Err: err}
	}

	q := fmt.Sprintf("SELECT %s FROM postings WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		postingColumns, where, orderClause(spec.SortKey))
	rows, err := s.db.QueryContext(ctx, q, append(args, engine.PageSize, spec.Offset())...)
	if err != nil {
		return nil, &engine.RetrievalError{Op: "sqlite query", Err: err}
	}
	defer rows.Close()

	var postings []engine.JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, &engine.RetrievalError{Op: "sqlite scan", Err: err}
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &engine.RetrievalError{Op: "sqlite rows", Err: err}
	}
	return &engine.RetrievalResult{Postings: postings, Total: total}, nil
}

// buildSQLiteWhere translates the spec into a WHERE body with ? params,
// mirroring FilterSpec.Matches exactly.
func buildSQLiteWhere(spec *engine.FilterSpec) (string, []any) {
	clauses := []string{"status = 'active'"}
	var args []any

	addText := func(term string, cols ...string) {
		pat := likePattern(term)
		var ors []string
		for _, col := range cols {
			ors = append(ors, "lower("+col+") LIKE ?")
			args = append(args, pat)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	switch {
	case spec.TitleTerm != "" || spec.LocationTerm != "":
		if spec.TitleTerm != "" {
			addText(spec.TitleTerm, "title", "description")
		}
		if spec.LocationTerm != "" {
			addText(spec.LocationTerm, "location", "city", "locations")
		}
	case spec.FreeText != "":
		addText(spec.FreeText, "title", "description", "location", "city", "locations")
	}

	addSet := func(col string, values []string) {
		if len(values) == 0 {
			return
		}
		ph := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
		clauses = append(clauses, col+" IN ("+ph+")")
		for _, v := range values {
			args = append(args, v)
		}
	}
	addSet("employment_type", etStrings(spec.EmploymentTypes))
	addSet("job_level", jlStrings(spec.JobLevels))
	addSet("onsite_type", otStrings(spec.OnsiteTypes))

	// Salary interval overlap; postings without salary data pass only
	// an unconstrained lower bound.
	clauses = append(clauses,
		`(((salary_min > 0 OR salary_max > 0) AND salary_max >= ? AND salary_min <= ?)
		  OR (salary_min = 0 AND salary_max = 0 AND ? = 0))`)
	args = append(args, spec.SalaryMin, spec.SalaryMax, spec.SalaryMin)

	if spec.CountryCode != "" {
		clauses = append(clauses, "upper(country) = ?")
		args = append(args, spec.CountryCode)
	}
	return strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (engine.JobPosting, error) {
	var p engine.JobPosting
	var locations, createdAt, updatedAt, endDate, company string
	var highPriority, boosted int
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &locations,
		&p.EmploymentType, &p.JobLevel, &p.OnsiteType, &p.SalaryMin, &p.SalaryMax,
		&p.Currency, &p.Status, &createdAt, &updatedAt, &endDate, &p.Country, &p.City,
		&p.MatchPercentage, &highPriority, &boosted, &company)
	if err != nil {
		return p, err
	}
	p.Locations = decodeList(locations)
	p.Company = decodeCompany(company)
	p.IsHighPriority = highPriority != 0
	p.IsBoosted = boosted != 0
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if endDate != "" {
		p.EndDate, _ = time.Parse(time.RFC3339, endDate)
	}
	return p, nil
}

// Insert stores one posting, assigning a fresh id when none is set and
// enforcing the salary and locations invariants.
func (s *SQLite) Insert(ctx context.Context, p *engine.JobPosting) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	normalize(p, time.Now().UTC())

	endDate := ""
	if !p.EndDate.IsZero() {
		endDate = p.EndDate.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO postings (`+postingColumns+`)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Title, p.Description, p.Location, encodeList(p.Locations),
		string(p.EmploymentType), string(p.JobLevel), string(p.OnsiteType),
		p.SalaryMin, p.SalaryMax, p.Currency, string(p.Status),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339), endDate,
		p.Country, p.City, p.MatchPercentage, boolInt(p.IsHighPriority), boolInt(p.IsBoosted),
		encodeCompany(p.Company))
	if err != nil {
		return fmt.Errorf("sqlite insert: %w", err)
	}
	return nil
}

// ExpireDue marks active postings whose end date has passed as expired.
// Returns the number of postings transitioned.
func (s *SQLite) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE postings SET status = 'expired', updated_at = ?
		 WHERE status = 'active' AND end_date != '' AND end_date < ?`,
		now.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("sqlite expire: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func etStrings(in []engine.EmploymentType) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func jlStrings(in []engine.JobLevel) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func otStrings(in []engine.OnsiteType) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
