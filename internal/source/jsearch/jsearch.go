// Package jsearch queries the JSearch API on RapidAPI. The free tier allows
// on the order of ten requests a month, so this adapter never joins the
// scheduled rotation: it runs only via the manual trigger endpoint. A 429
// aborts whatever is left of the run.
package jsearch

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
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	rapidAPIHost   = "jsearch.p.rapidapi.com"
)

var defaultQueries = []string{"software engineer in india"}

type Config struct {
	APIKey     string
	BaseURL    string
	Queries    []string
	MaxQueries int
}

type Adapter struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if len(cfg.Queries) == 0 {
		cfg.Queries = defaultQueries
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = 1
	}
	return &Adapter{
		cfg: cfg,
		hc:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *Adapter) Name() string { return string(domain.SourceJSearch) }

type jsearchJob struct {
	Title       string  `json:"job_title"`
	Employer    string  `json:"employer_name"`
	City        string  `json:"job_city"`
	Country     string  `json:"job_country"`
	Description string  `json:"job_description"`
	ApplyLink   string  `json:"job_apply_link"`
	IsRemote    bool    `json:"job_is_remote"`
	MinSalary   float64 `json:"job_min_salary"`
	MaxSalary   float64 `json:"job_max_salary"`
	PostedUnix  int64   `json:"job_posted_at_timestamp"`
}

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	if a.cfg.APIKey == "" {
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
				log.Printf("[jsearch] monthly quota hit, stopping run query=%q", q)
				break
			}
			log.Printf("[jsearch] search failed query=%q err=%v", q, err)
			continue
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (a *Adapter) search(ctx context.Context, query string) ([]domain.RawPosting, error) {
	v := url.Values{}
	v.Set("query", query)
	v.Set("num_pages", "1")
	apiURL := a.cfg.BaseURL + "/search?" + v.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("X-RapidAPI-Key", a.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, source.ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jsearch status %d", res.StatusCode)
	}

	var payload jsearchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jsearch decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(payload.Data))
	for _, j := range payload.Data {
		if j.ApplyLink == "" {
			continue
		}
		loc := j.City
		if j.Country != "" {
			if loc != "" {
				loc += ", "
			}
			loc += j.Country
		}
		raw := domain.RawPosting{
			Title:       j.Title,
			Company:     j.Employer,
			Location:    loc,
			Description: j.Description,
			URL:         j.ApplyLink,
			Remote:      j.IsRemote,
		}
		if j.MinSalary > 0 && j.MaxSalary > 0 {
			raw.Salary = fmt.Sprintf("%.0f - %.0f", j.MinSalary, j.MaxSalary)
		}
		if j.PostedUnix > 0 {
			t := time.Unix(j.PostedUnix, 0).UTC()
			raw.PostedAt = &t
		}
		out = append(out, raw)
	}
	return out, nil
}
