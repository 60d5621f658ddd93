// Package jooble queries the Jooble search API. The API key is part of the
// URL path and the search is a POST with a JSON body.
package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/source/util"
)

const (
	defaultBaseURL  = "https://jooble.org"
	defaultLocation = "India"
)

var defaultKeywords = []string{"software engineer", "data analyst"}

type Config struct {
	APIKey      string
	BaseURL     string
	Location    string
	Keywords    []string
	MaxKeywords int
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
	if cfg.Location == "" {
		cfg.Location = defaultLocation
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = defaultKeywords
	}
	if cfg.MaxKeywords <= 0 {
		cfg.MaxKeywords = 2
	}
	return &Adapter{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string { return string(domain.SourceJooble) }

type joobleJob struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Link     string `json:"link"`
	Company  string `json:"company"`
	Updated  string `json:"updated"` // "2006-01-02T15:04:05.9999999"
}

type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawPosting, error) {
	if a.cfg.APIKey == "" {
		return nil, nil
	}

	keywords := a.cfg.Keywords
	if len(keywords) > a.cfg.MaxKeywords {
		keywords = keywords[:a.cfg.MaxKeywords]
	}

	var out []domain.RawPosting
	for _, kw := range keywords {
		batch, err := a.search(ctx, kw)
		if err != nil {
			if errors.Is(err, source.ErrRateLimited) {
				log.Printf("[jooble] rate limited, stopping run keywords=%q", kw)
				break
			}
			log.Printf("[jooble] search failed keywords=%q err=%v", kw, err)
			continue
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (a *Adapter) search(ctx context.Context, keywords string) ([]domain.RawPosting, error) {
	apiURL := a.cfg.BaseURL + "/api/" + a.cfg.APIKey

	if a.limiter != nil {
		if err := a.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}

	body, _ := json.Marshal(map[string]string{
		"keywords": keywords,
		"location": a.cfg.Location,
	})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	req.Header.Set("User-Agent", "JobForge/1.0 (+local)")
	req.Header.Set("Content-Type", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jooble post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, source.ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jooble status %d", res.StatusCode)
	}

	var payload joobleResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jooble decode: %w", err)
	}

	out := make([]domain.RawPosting, 0, len(payload.Jobs))
	for _, j := range payload.Jobs {
		if j.Link == "" {
			continue
		}
		raw := domain.RawPosting{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Description: j.Snippet,
			Salary:      j.Salary,
			URL:         j.Link,
		}
		if len(j.Updated) >= 19 {
			if t, err := time.Parse("2006-01-02T15:04:05", j.Updated[:19]); err == nil {
				raw.PostedAt = &t
			}
		}
		out = append(out, raw)
	}
	return out, nil
}
