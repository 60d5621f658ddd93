// Package ingest owns the ingestion pass over all source adapters and the
// schedule that triggers it.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/normalize"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/store"
)

// Runner executes one ingestion pass: every adapter in declared order,
// strictly sequentially. Upstream rate limits and the single sqlite writer
// make sequential the safer default over fan-out.
type Runner struct {
	DB       *sql.DB
	Fetchers []source.Fetcher
	Delay    time.Duration // pause between adapters that did work
	OnSaved  func(domain.JobPosting)
	OnDone   func(RunSummary)
}

// RunOnce walks the adapter list and returns the aggregate summary. A
// broken adapter is recorded in its source summary and never aborts the
// remaining sources.
func (r *Runner) RunOnce(ctx context.Context) RunSummary {
	sum := RunSummary{StartedAt: time.Now().UTC()}

	for i, f := range r.Fetchers {
		if i > 0 && r.Delay > 0 && previousDidWork(sum) {
			sleepCtx(ctx, r.Delay)
		}

		ss := r.runSource(ctx, f)
		if ss.Err != "" {
			log.Printf("[ingest:%s] failed err=%q", ss.Source, ss.Err)
		} else {
			log.Printf("[ingest:%s] found=%d saved=%d skipped=%d", ss.Source, ss.Found, ss.Saved, ss.Skipped)
		}
		sum.add(ss)
	}

	sum.Duration = time.Since(sum.StartedAt)
	log.Printf("[ingest] run done found=%d saved=%d skipped=%d dur=%s",
		sum.TotalFound, sum.TotalSaved, sum.TotalSkipped, sum.Duration.Round(time.Millisecond))
	if r.OnDone != nil {
		r.OnDone(sum)
	}
	return sum
}

func (r *Runner) runSource(ctx context.Context, f source.Fetcher) (ss SourceSummary) {
	ss.Source = f.Name()
	defer func() {
		if rec := recover(); rec != nil {
			ss = SourceSummary{Source: f.Name(), Err: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	raws, err := f.Fetch(ctx)
	if err != nil {
		ss.Err = err.Error()
		return ss
	}
	ss.Found = len(raws)

	for _, raw := range raws {
		p := normalize.Normalize(raw, domain.Source(f.Name()))
		inserted, ierr := store.InsertIfNew(ctx, r.DB, p)
		if ierr != nil {
			log.Printf("[ingest:%s] insert error url=%q err=%v", f.Name(), p.URL, ierr)
			ss.Skipped++
			continue
		}
		if inserted {
			ss.Saved++
			if r.OnSaved != nil {
				r.OnSaved(p)
			}
		} else {
			ss.Skipped++
		}
	}
	return ss
}

// A source that made no requests (disabled or unconfigured) yields nothing
// and costs nothing, so the inter-adapter pause is skipped after it.
func previousDidWork(sum RunSummary) bool {
	last := sum.Sources[len(sum.Sources)-1]
	return last.Found > 0 || last.Err != ""
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
