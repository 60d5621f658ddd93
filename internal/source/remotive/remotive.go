// Package remotive pulls postings from the public Remotive API. No
// credentials required; everything Remotive lists is remote by definition.
package remotive

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

const defaultBaseURL = "https://remotive.com"

// One request per search term, so keep the default list short.
var defaultSearchTerms = []string{"software engineer", "data", "machine learning"}

type Config struct {
	BaseURL     string
	SearchTerms []string
	MaxTerms    int // cap per run; 0 means default
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
	if len(cfg.SearchTerms) == 0 {
		cfg.SearchTerms = defaultSearchTerms
	}
	if cfg.MaxTerms <= 0 {
		cfg.MaxTerms = 3
	}
	return &Adapter{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string { return string(domain.SourceRemotive) }

type remotiveJob struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"candidate_required_location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	PublishedAt string `json:"publication_date"` // "2006-01-02T15:04:05"
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	terms := a.cfg.SearchTerms
	if len(terms) > a.cfg.MaxTerms {
		terms = terms[:a.cfg.MaxTerms]
	}

	var out []domain.RawPosting
	for _, term := range terms {
		batch, err := a.search(ctx, term)
		if err != nil {
			if errors.Is(err, source.ErrRateLimited) {
				log.Printf("[remotive] rate limited, stopping run term=%q", term)
				break
			}
			log.Printf("[remotive] search failed term=%q err=%v", term, err)
			continue
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (a *Adapter) search(ctx context.Context, term string) ([]domain.RawPosting, error) {
	q := url.Values{}
	q.Set("search", term)
	q.Set("limit", "50")
	apiURL := a.cfg.BaseURL + "/api/remote-jobs?" + q.Encode()

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
		return nil, fmt.Errorf("remotive get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, source.ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remotive status %d", res.StatusCode)
	}

	var payload remotiveResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remotive decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(payload.Jobs))
	for _, j := range payload.Jobs {
		if j.URL == "" {
			continue
		}
		raw := domain.RawPosting{
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    j.Location,
			Description: j.Description,
			Salary:      j.Salary,
			URL:         j.URL,
			Remote:      true,
		}
		if t, err := time.Parse("2006-01-02T15:04:05", j.PublishedAt); err == nil {
			raw.PostedAt = &t
		}
		out = append(out, raw)
	}
	return out, nil
}
