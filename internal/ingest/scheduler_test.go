package ingest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/store"
)

func TestStaleness(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewScheduler(&Runner{DB: db}, db, 2*time.Hour, 2*time.Hour)

	assert.True(t, s.stale(ctx), "empty store is stale")

	old := domain.JobPosting{
		Title: "Old", Company: "Acme", Location: "Remote",
		URL: "https://x.test/job/old", Source: domain.SourceRemotive,
		Type: domain.TypeFullTime, Category: domain.CategorySoftware,
		CreatedAt: time.Now().Add(-3 * time.Hour).UTC(),
	}
	_, err := store.InsertIfNew(ctx, db, old)
	require.NoError(t, err)
	assert.True(t, s.stale(ctx), "newest row older than threshold")

	fresh := old
	fresh.URL = "https://x.test/job/fresh"
	fresh.CreatedAt = time.Now().UTC()
	_, err = store.InsertIfNew(ctx, db, fresh)
	require.NoError(t, err)
	assert.False(t, s.stale(ctx), "fresh row suppresses the startup run")
}

func TestTriggerRunSingleFlight(t *testing.T) {
	db := testDB(t)

	var calls int32
	started := make(chan struct{}, 2)
	release := make(chan struct{})

	blocking := &fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
		atomic.AddInt32(&calls, 1)
		started <- struct{}{}
		<-release
		return nil, nil
	}}

	s := NewScheduler(&Runner{DB: db, Fetchers: []source.Fetcher{blocking}}, db, time.Hour, time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.TriggerRun(context.Background())
	}()

	<-started // first run is inside the fetcher now

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.TriggerRun(context.Background()) // must join, not start a second run
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second trigger joined the in-flight run")
}

func TestTriggerRunUpdatesStatus(t *testing.T) {
	db := testDB(t)
	f := &fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
		return []domain.RawPosting{raw("https://x.test/job/9")}, nil
	}}
	s := NewScheduler(&Runner{DB: db, Fetchers: []source.Fetcher{f}}, db, time.Hour, time.Hour)

	sum := s.TriggerRun(context.Background())
	assert.Equal(t, 1, sum.TotalSaved)

	st := s.Status()
	assert.False(t, st.Running)
	assert.Equal(t, 1, st.LastSaved)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}
