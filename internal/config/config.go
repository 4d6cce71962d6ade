// Package config loads runtime configuration from the environment.
// Everything is optional: with no variables set the process runs on an
// embedded SQLite store with an in-memory cache and history.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds process-level configuration. Engine dictionaries live in
// engine.Config; this covers the infrastructure the process wires up.
type Config struct {
	DatabaseURL   string // non-empty selects the PostgreSQL backend
	SQLitePath    string
	RedisURL      string // non-empty enables L2 cache and redis history
	CacheTTL      time.Duration
	SweepInterval time.Duration // zero disables the expiry sweeper
	SynthSeed     int64
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	c := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		CacheTTL:    30 * time.Second,
	}

	if c.SQLitePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".jobsearch")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
		c.SQLitePath = filepath.Join(dir, "postings.db")
	}

	if s := os.Getenv("CACHE_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", s)
		}
		c.CacheTTL = d
	}

	if s := os.Getenv("SWEEP_INTERVAL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SWEEP_INTERVAL must be a positive duration, got %q", s)
		}
		c.SweepInterval = d
	}

	if s := os.Getenv("SYNTH_SEED"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SYNTH_SEED must be an integer, got %q", s)
		}
		c.SynthSeed = v
	}

	return c, nil
}
