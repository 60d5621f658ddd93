package httpapi

import (
	"context"
	"net/http"

	"jobforge-engine/internal/ingest"
)

type IngestHandler struct {
	Scheduler      *ingest.Scheduler
	RunQuotaSource func(ctx context.Context) ingest.RunSummary
}

func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Scheduler.Status())
}

// Run kicks the regular pipeline. The response returns immediately; the
// pass itself is single-flight, so hammering this endpoint cannot stack
// concurrent runs.
func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Scheduler.Status().Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go h.Scheduler.TriggerRun(context.Background())

	writeJSON(w, map[string]any{"ok": true})
}

// RunQuota runs only the strict-quota source, synchronously, and reports
// its summary. Quota is too precious to fire blind.
func (h IngestHandler) RunQuota(w http.ResponseWriter, r *http.Request) {
	if h.RunQuotaSource == nil {
		WriteError(w, r, http.StatusNotFound, "source_disabled", "jsearch source is not configured")
		return
	}
	sum := h.RunQuotaSource(r.Context())
	writeJSON(w, sum)
}
