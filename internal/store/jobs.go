package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jobforge-engine/internal/domain"
)

// Migrate brings the schema to the current version. The unique index on url
// is the dedup guarantee everything else leans on.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  source TEXT NOT NULL,
  verified INTEGER NOT NULL DEFAULT 1,
  job_type TEXT NOT NULL,
  category TEXT NOT NULL,
  is_remote INTEGER NOT NULL DEFAULT 0,
  is_india_eligible INTEGER NOT NULL DEFAULT 0,
  posted_at TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_url ON jobs(url);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertIfNew stores a posting unless its URL already exists. INSERT OR
// IGNORE rides on the unique url index, so a concurrent insert losing the
// race looks exactly like an ordinary duplicate: (false, nil).
func InsertIfNew(ctx context.Context, db *sql.DB, p domain.JobPosting) (inserted bool, err error) {
	if strings.TrimSpace(p.URL) == "" {
		return false, errors.New("missing url")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.PostedAt.IsZero() {
		p.PostedAt = p.CreatedAt
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs(title, company, location, description, salary, url, source, verified, job_type, category, is_remote, is_india_eligible, posted_at, created_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		p.Title,
		p.Company,
		p.Location,
		p.Description,
		p.Salary,
		strings.TrimSpace(p.URL),
		string(p.Source),
		boolToInt(p.Verified),
		string(p.Type),
		string(p.Category),
		boolToInt(p.IsRemote),
		boolToInt(p.IsIndiaEligible),
		p.PostedAt.UTC().Format(time.RFC3339),
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// FindByURL returns the stored posting for a URL, or nil if none exists.
func FindByURL(ctx context.Context, db *sql.DB, url string) (*domain.JobPosting, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, title, company, location, description, salary, url, source, verified, job_type, category, is_remote, is_india_eligible, posted_at, created_at
FROM jobs
WHERE url = ?
LIMIT 1;`, url)

	p, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewestCreatedAt reports when the most recent posting was stored. ok is
// false for an empty table.
func NewestCreatedAt(ctx context.Context, db *sql.DB) (newest time.Time, ok bool, err error) {
	var s sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT MAX(created_at) FROM jobs;`).Scan(&s); err != nil {
		return time.Time{}, false, err
	}
	if !s.Valid || s.String == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// ListRecent returns the newest postings for the operational API.
func ListRecent(ctx context.Context, db *sql.DB, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, title, company, location, description, salary, url, source, verified, job_type, category, is_remote, is_india_eligible, posted_at, created_at
FROM jobs
ORDER BY created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobPosting
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (*domain.JobPosting, error) {
	var p domain.JobPosting
	var src, jt, cat string
	var verified, remote, eligible int
	var postedStr, createdStr string

	if err := r.Scan(
		&p.ID, &p.Title, &p.Company, &p.Location, &p.Description, &p.Salary,
		&p.URL, &src, &verified, &jt, &cat, &remote, &eligible,
		&postedStr, &createdStr,
	); err != nil {
		return nil, err
	}

	p.Source = domain.Source(src)
	p.Type = domain.JobType(jt)
	p.Category = domain.Category(cat)
	p.Verified = verified != 0
	p.IsRemote = remote != 0
	p.IsIndiaEligible = eligible != 0
	p.PostedAt, _ = time.Parse(time.RFC3339, postedStr)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
