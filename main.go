// jobsearch — faceted job-listing query engine.
//
// The engine is a library (internal/engine) consumed in-process by its
// UI and persistence collaborators. This binary is the demo harness: it
// wires configuration, a retrieval backend, the result cache, and the
// search history, runs one query, and prints the JSON result. With
// SWEEP_INTERVAL set it stays alive running the posting-expiry sweeper.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hireloop/jobsearch/internal/config"
	"github.com/hireloop/jobsearch/internal/engine"
	"github.com/hireloop/jobsearch/internal/store"
	"github.com/hireloop/jobsearch/internal/sweeper"
)

func main() {
	query := flag.String("q", "", "free-text search phrase")
	employment := flag.String("employment", "", "comma-separated employment types")
	levels := flag.String("levels", "", "comma-separated job levels")
	onsite := flag.String("onsite", "", "comma-separated onsite types")
	salaryMin := flag.Int("salary-min", 0, "salary range lower bound")
	salaryMax := flag.Int("salary-max", 0, "salary range upper bound")
	country := flag.String("country", "", "country code filter")
	sortKey := flag.String("sort", "date", "sort key: relevance, date, salary")
	page := flag.Int("page", 1, "result page, 1-based")
	user := flag.String("user", "local", "user/session key for search history")
	suggest := flag.String("suggest", "", "print suggestions for a partial phrase and exit")
	flag.Parse()

	// An explicit -salary-min 0 -salary-max 0 is a real (degenerate)
	// range, not the unset default.
	salarySet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "salary-min" || f.Name == "salary-max" {
			salarySet = true
		}
	})

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	engine.Init(engine.Config{
		SynthSeed: cfg.SynthSeed,
		CacheTTL:  cfg.CacheTTL,
	})
	engine.InitCache(cfg.RedisURL, cfg.CacheTTL, 1000)

	if *suggest != "" {
		for _, s := range engine.Suggest(*suggest, engine.Cfg.SuggestTitles, engine.Cfg.SuggestLocations) {
			fmt.Println(s)
		}
		return
	}

	ctx := context.Background()
	backend, expirer, closeFn, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("backend open failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeFn()

	spec := engine.BuildFilterSpec(engine.FilterInput{
		FreeText:        *query,
		EmploymentTypes: splitList(*employment),
		JobLevels:       splitList(*levels),
		OnsiteTypes:     splitList(*onsite),
		SalaryMin:       *salaryMin,
		SalaryMax:       *salaryMax,
		SalaryRangeSet:  salarySet,
		CountryCode:     *country,
		SortKey:         *sortKey,
		Page:            *page,
	}, engine.NewGazetteer(engine.Cfg.Gazetteer))

	eng := engine.New(backend)
	result, err := eng.Search(ctx, &spec)
	if err != nil {
		slog.Error("search failed", slog.Any("error", err))
		os.Exit(1)
	}

	history := engine.NewHistory(cfg.RedisURL)
	if *query != "" {
		if err := history.Record(ctx, *user, *query); err != nil {
			slog.Warn("history record failed", slog.Any("error", err))
		} else {
			engine.IncrHistoryWrites()
		}
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if cfg.SweepInterval > 0 {
		sw := sweeper.New(expirer, cfg.SweepInterval)
		if err := sw.Start(ctx); err != nil {
			slog.Error("sweeper start failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer sw.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	}
}

// openBackend selects PostgreSQL when DATABASE_URL is set, otherwise
// the embedded SQLite store.
func openBackend(ctx context.Context, cfg *config.Config) (engine.Backend, sweeper.Expirer, func(), error) {
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pg, err := store.OpenPostgres(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Info("backend: postgres")
		return pg, pg, pg.Close, nil
	}

	db, err := store.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Info("backend: sqlite", slog.String("path", cfg.SQLitePath))
	return db, db, func() { db.Close() }, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
