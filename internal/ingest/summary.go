package ingest

import "time"

// SourceSummary is one adapter's contribution to a run.
type SourceSummary struct {
	Source  string `json:"source"`
	Found   int    `json:"found"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"`
	Err     string `json:"error,omitempty"`
}

// RunSummary aggregates a full ingestion pass. Reported, never persisted.
type RunSummary struct {
	StartedAt    time.Time       `json:"started_at"`
	Duration     time.Duration   `json:"duration"`
	Sources      []SourceSummary `json:"sources"`
	TotalFound   int             `json:"total_found"`
	TotalSaved   int             `json:"total_saved"`
	TotalSkipped int             `json:"total_skipped"`
}

func (s *RunSummary) add(ss SourceSummary) {
	s.Sources = append(s.Sources, ss)
	s.TotalFound += ss.Found
	s.TotalSaved += ss.Saved
	s.TotalSkipped += ss.Skipped
}
