package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hireloop/jobsearch/internal/engine"
)

// Postgres is the pooled PostgreSQL retrieval backend, selected when a
// DATABASE_URL is configured. Same query contract as the SQLite store.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, verifies connectivity, and ensures the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: init schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() { p.pool.Close() }

const pgSchema = `CREATE TABLE IF NOT EXISTS postings (
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
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL,
	end_date         TIMESTAMPTZ,
	country          TEXT NOT NULL DEFAULT '',
	city             TEXT NOT NULL DEFAULT '',
	match_percentage INTEGER NOT NULL DEFAULT 0,
	is_high_priority BOOLEAN NOT NULL DEFAULT FALSE,
	is_boosted       BOOLEAN NOT NULL DEFAULT FALSE,
	company          TEXT NOT NULL DEFAULT '{}'
)`

// Retrieve implements engine.Backend over PostgreSQL.
func (p *Postgres) Retrieve(ctx context.Context, spec *engine.FilterSpec) (*engine.RetrievalResult, error) {
	where, args := buildPgWhere(spec)

	var total int
	if err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM postings WHERE "+where, args...).Scan(&total); err != nil {
		return nil, &engine.RetrievalError{Op: "postgres count", Err: err}
	}

	q := fmt.Sprintf(`SELECT %s FROM postings WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		postingColumns, where, orderClause(spec.SortKey), len(args)+1, len(args)+2)
	rows, err := p.pool.Query(ctx, q, append(args, engine.PageSize, spec.Offset())...)
	if err != nil {
		return nil, &engine.RetrievalError{Op: "postgres query", Err: err}
	}
	defer rows.Close()

	var postings []engine.JobPosting
	for rows.Next() {
		var jp engine.JobPosting
		var locations, company string
		var endDate *time.Time
		if err := rows.Scan(&jp.ID, &jp.Title, &jp.Description, &jp.Location, &locations,
			&jp.EmploymentType, &jp.JobLevel, &jp.OnsiteType, &jp.SalaryMin, &jp.SalaryMax,
			&jp.Currency, &jp.Status, &jp.CreatedAt, &jp.UpdatedAt, &endDate, &jp.Country, &jp.City,
			&jp.MatchPercentage, &jp.IsHighPriority, &jp.IsBoosted, &company); err != nil {
			return nil, &engine.RetrievalError{Op: "postgres scan", Err: err}
		}
		jp.Locations = decodeList(locations)
		jp.Company = decodeCompany(company)
		if endDate != nil {
			jp.EndDate = *endDate
		}
		postings = append(postings, jp)
	}
	if err := rows.Err(); err != nil {
		return nil, &engine.RetrievalError{Op: "postgres rows", Err: err}
	}
	return &engine.RetrievalResult{Postings: postings, Total: total}, nil
}

// buildPgWhere translates the spec into a WHERE body with $n params.
func buildPgWhere(spec *engine.FilterSpec) (string, []any) {
	clauses := []string{"status = 'active'"}
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	addText := func(term string, cols ...string) {
		ph := next(likePattern(term))
		var ors []string
		for _, col := range cols {
			ors = append(ors, col+" ILIKE "+ph)
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

	if set := etStrings(spec.EmploymentTypes); len(set) > 0 {
		clauses = append(clauses, "employment_type = ANY("+next(set)+")")
	}
	if set := jlStrings(spec.JobLevels); len(set) > 0 {
		clauses = append(clauses, "job_level = ANY("+next(set)+")")
	}
	if set := otStrings(spec.OnsiteTypes); len(set) > 0 {
		clauses = append(clauses, "onsite_type = ANY("+next(set)+")")
	}

	minPh, maxPh := next(spec.SalaryMin), next(spec.SalaryMax)
	clauses = append(clauses, fmt.Sprintf(
		`(((salary_min > 0 OR salary_max > 0) AND salary_max >= %s AND salary_min <= %s)
		  OR (salary_min = 0 AND salary_max = 0 AND %s = 0))`, minPh, maxPh, minPh))

	if spec.CountryCode != "" {
		clauses = append(clauses, "upper(country) = "+next(spec.CountryCode))
	}
	return strings.Join(clauses, " AND "), args
}

// Insert stores one posting, assigning a fresh id when none is set.
func (p *Postgres) Insert(ctx context.Context, jp *engine.JobPosting) error {
	if jp.ID == "" {
		jp.ID = uuid.NewString()
	}
	normalize(jp, time.Now().UTC())

	var endDate *time.Time
	if !jp.EndDate.IsZero() {
		t := jp.EndDate.UTC()
		endDate = &t
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO postings (`+postingColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title, description = EXCLUDED.description,
		   location = EXCLUDED.location, locations = EXCLUDED.locations,
		   employment_type = EXCLUDED.employment_type, job_level = EXCLUDED.job_level,
		   onsite_type = EXCLUDED.onsite_type, salary_min = EXCLUDED.salary_min,
		   salary_max = EXCLUDED.salary_max, currency = EXCLUDED.currency,
		   status = EXCLUDED.status, updated_at = EXCLUDED.updated_at,
		   end_date = EXCLUDED.end_date, country = EXCLUDED.country,
		   city = EXCLUDED.city, match_percentage = EXCLUDED.match_percentage,
		   is_high_priority = EXCLUDED.is_high_priority, is_boosted = EXCLUDED.is_boosted,
		   company = EXCLUDED.company`,
		jp.ID, jp.Title, jp.Description, jp.Location, encodeList(jp.Locations),
		string(jp.EmploymentType), string(jp.JobLevel), string(jp.OnsiteType),
		jp.SalaryMin, jp.SalaryMax, jp.Currency, string(jp.Status),
		jp.CreatedAt, jp.UpdatedAt, endDate, jp.Country, jp.City,
		jp.MatchPercentage, jp.IsHighPriority, jp.IsBoosted, encodeCompany(jp.Company))
	if err != nil {
		return fmt.Errorf("postgres insert: %w", err)
	}
	return nil
}

// ExpireDue marks active postings whose end date has passed as expired.
func (p *Postgres) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx,
		`UPDATE postings SET status = 'expired', updated_at = $1
		 WHERE status = 'active' AND end_date IS NOT NULL AND end_date < $1`,
		now.UTC())
	if err != nil {
		return 0, fmt.Errorf("postgres expire: %w", err)
	}
	return tag.RowsAffected(), nil
}
