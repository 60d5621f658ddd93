// Package source defines the contract every job-API adapter implements.
package source

import (
	"context"
	"errors"

	"jobforge-engine/internal/domain"
)

// ErrRateLimited marks an upstream 429. Multi-query adapters stop issuing
// further calls for the rest of the run when they see it.
var ErrRateLimited = errors.New("upstream rate limited")

// A Fetcher pulls raw postings from one external job API. Implementations
// must not panic on upstream failure: a broken query is logged and skipped,
// and only a whole-source failure surfaces as an error. An adapter missing
// its credentials returns (nil, nil) without touching the network.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawPosting, error)
}
