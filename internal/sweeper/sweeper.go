// Package sweeper wires up the cron job that expires postings whose end
// date has passed, keeping the searchable set limited to live inventory.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer is the store-side operation the sweeper drives.
type Expirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper wraps robfig/cron and periodically transitions postings
// active → expired.
type Sweeper struct {
	cron  *cron.Cron
	store Expirer
	spec  string // cron spec, e.g. "@every 1h"
}

// New creates a Sweeper that fires every interval.
func New(store Expirer, interval time.Duration) *Sweeper {
	return &Sweeper{
		cron:  cron.New(),
		store: store,
		spec:  fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the job and starts the scheduler. Runs one sweep
// immediately so a stale dataset is corrected without waiting for the
// first tick.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	slog.Info("sweeper: started", slog.String("spec", s.spec))

	go s.sweep(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	slog.Info("sweeper: stopped")
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.store.ExpireDue(ctx, time.Now())
	if err != nil {
		slog.Error("sweeper: expire failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		slog.Info("sweeper: postings expired", slog.Int64("count", n))
	}
}
