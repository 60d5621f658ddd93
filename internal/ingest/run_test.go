package ingest

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/store"
)

type fakeFetcher struct {
	name string
	fn   func(ctx context.Context) ([]domain.RawPosting, error)
}

func (f *fakeFetcher) Name() string { return f.name }
func (f *fakeFetcher) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	return f.fn(ctx)
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, store.Migrate(d.Pool))
	return d.Pool
}

func raw(url string) domain.RawPosting {
	return domain.RawPosting{Title: "Engineer", Company: "Acme", URL: url}
}

func TestRunOnceIntraRunDuplicate(t *testing.T) {
	db := testDB(t)
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{&fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
			return []domain.RawPosting{raw("https://x.test/job/1"), raw("https://x.test/job/1")}, nil
		}}},
	}

	sum := r.RunOnce(context.Background())

	require.Len(t, sum.Sources, 1)
	assert.Equal(t, 2, sum.Sources[0].Found)
	assert.Equal(t, 1, sum.Sources[0].Saved)
	assert.Equal(t, 1, sum.Sources[0].Skipped)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRunOnceIdempotentAcrossRuns(t *testing.T) {
	db := testDB(t)
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{&fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
			return []domain.RawPosting{raw("https://x.test/job/1")}, nil
		}}},
	}

	first := r.RunOnce(context.Background())
	second := r.RunOnce(context.Background())

	assert.Equal(t, 1, first.TotalSaved)
	assert.Equal(t, 0, second.TotalSaved)
	assert.Equal(t, 1, second.TotalSkipped)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRunOnceUnconfiguredSource(t *testing.T) {
	db := testDB(t)
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{
			&fakeFetcher{name: "adzuna", fn: func(context.Context) ([]domain.RawPosting, error) {
				return nil, nil // missing credentials: empty, no error
			}},
			&fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
				return []domain.RawPosting{raw("https://x.test/job/2")}, nil
			}},
		},
	}

	sum := r.RunOnce(context.Background())

	require.Len(t, sum.Sources, 2)
	assert.Equal(t, SourceSummary{Source: "adzuna"}, sum.Sources[0])
	assert.Equal(t, 1, sum.Sources[1].Saved, "run continued past the idle source")
}

func TestRunOnceContainsSourceFailure(t *testing.T) {
	db := testDB(t)
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{
			&fakeFetcher{name: "jooble", fn: func(context.Context) ([]domain.RawPosting, error) {
				return nil, errors.New("upstream exploded")
			}},
			&fakeFetcher{name: "remoteok", fn: func(context.Context) ([]domain.RawPosting, error) {
				return []domain.RawPosting{raw("https://x.test/job/3")}, nil
			}},
		},
	}

	sum := r.RunOnce(context.Background())

	assert.Equal(t, "upstream exploded", sum.Sources[0].Err)
	assert.Equal(t, 0, sum.Sources[0].Found)
	assert.Equal(t, 1, sum.Sources[1].Saved)
}

func TestRunOnceRecoversPanic(t *testing.T) {
	db := testDB(t)
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{
			&fakeFetcher{name: "arbeitnow", fn: func(context.Context) ([]domain.RawPosting, error) {
				panic("boom")
			}},
			&fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
				return []domain.RawPosting{raw("https://x.test/job/4")}, nil
			}},
		},
	}

	sum := r.RunOnce(context.Background())

	assert.Contains(t, sum.Sources[0].Err, "panic: boom")
	assert.Equal(t, 1, sum.Sources[1].Saved)
}

func TestRunOnceNotifiesOnSaved(t *testing.T) {
	db := testDB(t)
	var saved []string
	r := &Runner{
		DB: db,
		Fetchers: []source.Fetcher{&fakeFetcher{name: "remotive", fn: func(context.Context) ([]domain.RawPosting, error) {
			return []domain.RawPosting{raw("https://x.test/job/5"), raw("https://x.test/job/5")}, nil
		}}},
		OnSaved: func(p domain.JobPosting) { saved = append(saved, p.URL) },
	}

	r.RunOnce(context.Background())
	assert.Equal(t, []string{"https://x.test/job/5"}, saved, "only new rows notify")
}
