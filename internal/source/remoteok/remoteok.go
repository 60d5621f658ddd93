// Package remoteok pulls the RemoteOK public feed. Single anonymous GET;
// the first array element is a legal-notice stub, not a posting.
package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobforge-engine/internal/domain"
)

const defaultBaseURL = "https://remoteok.com"

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
		hc:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *Adapter) Name() string { return string(domain.SourceRemoteOK) }

type remoteokItem struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	Date        string `json:"date"` // RFC3339
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/api", nil)
	req.Header.Set("User-Agent", "JobForge/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remoteok status %d", res.StatusCode)
	}

	var items []remoteokItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(items))
	for _, it := range items {
		// the legal stub and malformed rows have no position/url
		if it.Position == "" || it.URL == "" {
			continue
		}
		raw := domain.RawPosting{
			Title:       it.Position,
			Company:     it.Company,
			Location:    it.Location,
			Description: it.Description,
			URL:         it.URL,
			Remote:      true,
		}
		if it.SalaryMin > 0 && it.SalaryMax > 0 {
			raw.Salary = fmt.Sprintf("$%d - $%d", it.SalaryMin, it.SalaryMax)
		}
		if t, err := time.Parse(time.RFC3339, it.Date); err == nil {
			raw.PostedAt = &t
		}
		out = append(out, raw)
	}
	return out, nil
}
