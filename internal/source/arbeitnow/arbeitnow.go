// Package arbeitnow pulls the Arbeitnow job-board feed. Anonymous, one GET
// for the first page per run.
package arbeitnow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobforge-engine/internal/domain"
)

const defaultBaseURL = "https://www.arbeitnow.com"

type Config struct {
	BaseURL string
}

type Adapter struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Adapter{
		cfg: cfg,
		hc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) Name() string { return string(domain.SourceArbeitnow) }

type arbeitnowJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Remote      bool   `json:"remote"`
	CreatedAt   int64  `json:"created_at"` // unix seconds
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/api/job-board-api", nil)
	req.Header.Set("User-Agent", "JobForge/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("arbeitnow status %d", res.StatusCode)
	}

	var payload arbeitnowResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("arbeitnow decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(payload.Data))
	for _, j := range payload.Data {
		if strings.TrimSpace(j.URL) == "" {
			continue
		}
		raw := domain.RawPosting{
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    j.Location,
			Description: j.Description,
			URL:         j.URL,
			Remote:      j.Remote,
		}
		if j.CreatedAt > 0 {
			t := time.Unix(j.CreatedAt, 0).UTC()
			raw.PostedAt = &t
		}
		out = append(out, raw)
	}
	return out, nil
}
