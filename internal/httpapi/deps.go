package httpapi

import (
	"context"
	"database/sql"

	"jobforge-engine/internal/events"
	"jobforge-engine/internal/ingest"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Scheduled pipeline
	Scheduler *ingest.Scheduler

	// Manual pass over the strict-quota source only (inject for testability)
	RunQuotaSource func(ctx context.Context) ingest.RunSummary
}
