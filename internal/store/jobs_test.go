package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge-engine/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, Migrate(d.Pool))
	return d.Pool
}

func posting(url string) domain.JobPosting {
	return domain.JobPosting{
		Title:    "Engineer",
		Company:  "Acme",
		Location: "Remote",
		URL:      url,
		Source:   domain.SourceRemotive,
		Verified: true,
		Type:     domain.TypeFullTime,
		Category: domain.CategorySoftware,
	}
}

func TestInsertIfNewDeduplicatesByURL(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	inserted, err := InsertIfNew(ctx, db, posting("https://x.test/job/1"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// same URL from a different source still collapses; first writer wins
	dup := posting("https://x.test/job/1")
	dup.Source = domain.SourceAdzuna
	dup.Title = "Totally Different Title"
	inserted, err = InsertIfNew(ctx, db, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&n))
	assert.Equal(t, 1, n)

	got, err := FindByURL(ctx, db, "https://x.test/job/1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Engineer", got.Title, "later arrival did not overwrite")
	assert.Equal(t, domain.SourceRemotive, got.Source)
}

func TestInsertIfNewRejectsEmptyURL(t *testing.T) {
	db := testDB(t)
	_, err := InsertIfNew(context.Background(), db, posting("  "))
	assert.Error(t, err)
}

func TestFindByURLMissing(t *testing.T) {
	db := testDB(t)
	got, err := FindByURL(context.Background(), db, "https://x.test/none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewestCreatedAt(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, ok, err := NewestCreatedAt(ctx, db)
	require.NoError(t, err)
	assert.False(t, ok, "empty table reports no newest row")

	old := posting("https://x.test/job/old")
	old.CreatedAt = time.Now().Add(-3 * time.Hour).UTC()
	_, err = InsertIfNew(ctx, db, old)
	require.NoError(t, err)

	fresh := posting("https://x.test/job/new")
	fresh.CreatedAt = time.Now().UTC()
	_, err = InsertIfNew(ctx, db, fresh)
	require.NoError(t, err)

	newest, ok, err := NewestCreatedAt(ctx, db)
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), newest, time.Minute)
}

func TestListRecent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, u := range []string{"https://x.test/a", "https://x.test/b"} {
		_, err := InsertIfNew(ctx, db, posting(u))
		require.NoError(t, err)
	}

	jobs, err := ListRecent(ctx, db, 10)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.True(t, jobs[0].Verified)
}
