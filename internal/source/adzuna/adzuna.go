// Package adzuna queries the Adzuna search API for the configured country.
// Requires an app_id/app_key pair; without them the adapter is a no-op.
package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/source/util"
)

const (
	defaultBaseURL = "https://api.adzuna.com"
	defaultCountry = "in"
)

var defaultQueries = []string{"software developer", "data analyst"}

type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	Queries    []string
	MaxQueries int
}

type Adapter struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if len(cfg.Queries) == 0 {
		cfg.Queries = defaultQueries
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = 2
	}
	return &Adapter{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string { return string(domain.SourceAdzuna) }

type adzunaResult struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Created     string  `json:"created"` // RFC3339
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	if a.cfg.AppID == "" || a.cfg.AppKey == "" {
		return nil, nil
	}

	queries := a.cfg.Queries
	if len(queries) > a.cfg.MaxQueries {
		queries = queries[:a.cfg.MaxQueries]
	}

	var out []domain.RawPosting
	for _, q := range queries {
		batch, err := a.search(ctx, q)
		if err != nil {
			if errors.Is(err, source.ErrRateLimited) {
				log.Printf("[adzuna] rate limited, stopping run query=%q", q)
				break
			}
			log.Printf("[adzuna] search failed query=%q err=%v", q, err)
			continue
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (a *Adapter) search(ctx context.Context, query string) ([]domain.RawPosting, error) {
	v := url.Values{}
	v.Set("app_id", a.cfg.AppID)
	v.Set("app_key", a.cfg.AppKey)
	v.Set("what", query)
	v.Set("results_per_page", "50")
	v.Set("content-type", "application/json")
	apiURL := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", a.cfg.BaseURL, a.cfg.Country, v.Encode())

	if a.limiter != nil {
		if err := a.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "JobForge/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, source.ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("adzuna status %d", res.StatusCode)
	}

	var payload adzunaResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.RedirectURL == "" {
			continue
		}
		raw := domain.RawPosting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			URL:         r.RedirectURL,
		}
		if r.SalaryMin > 0 && r.SalaryMax > 0 {
			raw.Salary = fmt.Sprintf("%.0f - %.0f", r.SalaryMin, r.SalaryMax)
		}
		if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
			raw.PostedAt = &t
		}
		out = append(out, raw)
	}
	return out, nil
}
