package ingest

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"jobforge-engine/internal/store"
)

// Status mirrors what the operational API reports about the schedule.
type Status struct {
	Running   bool   `json:"running"`
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastSaved int    `json:"last_saved"`
	LastError string `json:"last_error"`
}

// Scheduler owns the recurring trigger and the startup staleness check.
// Every trigger path goes through a singleflight group, so a trigger that
// lands while a pass is running piggybacks on the in-flight pass instead of
// starting a second one.
type Scheduler struct {
	Runner    *Runner
	DB        *sql.DB
	Interval  time.Duration
	Staleness time.Duration

	group  singleflight.Group
	status atomic.Value // Status
}

func NewScheduler(runner *Runner, db *sql.DB, interval, staleness time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 2 * time.Hour
	}
	if staleness <= 0 {
		staleness = interval
	}
	s := &Scheduler{Runner: runner, DB: db, Interval: interval, Staleness: staleness}
	s.status.Store(Status{})
	return s
}

// Start blocks until ctx is cancelled. It fires an immediate run when the
// store looks stale, then runs on every tick.
func (s *Scheduler) Start(ctx context.Context) {
	if s.stale(ctx) {
		log.Printf("[scheduler] store stale or empty, running at startup")
		s.TriggerRun(ctx)
	}

	t := time.NewTicker(s.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.TriggerRun(ctx)
		}
	}
}

// TriggerRun starts an ingestion pass, or joins the one already in flight,
// and returns its summary.
func (s *Scheduler) TriggerRun(ctx context.Context) RunSummary {
	v, _, shared := s.group.Do("run", func() (any, error) {
		st := s.Status()
		st.Running = true
		st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
		s.status.Store(st)

		sum := s.Runner.RunOnce(ctx)

		st = s.Status()
		st.Running = false
		st.LastSaved = sum.TotalSaved
		st.LastError = firstError(sum)
		if st.LastError == "" {
			st.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		}
		s.status.Store(st)
		return sum, nil
	})
	if shared {
		log.Printf("[scheduler] trigger joined in-flight run")
	}
	return v.(RunSummary)
}

func (s *Scheduler) Status() Status {
	return s.status.Load().(Status)
}

func (s *Scheduler) stale(ctx context.Context) bool {
	newest, ok, err := store.NewestCreatedAt(ctx, s.DB)
	if err != nil {
		log.Printf("[scheduler] staleness check failed err=%v", err)
		return false
	}
	if !ok {
		return true
	}
	return time.Since(newest) > s.Staleness
}

func firstError(sum RunSummary) string {
	for _, ss := range sum.Sources {
		if ss.Err != "" {
			return ss.Source + ": " + ss.Err
		}
	}
	return ""
}
