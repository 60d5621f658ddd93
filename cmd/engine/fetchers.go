package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"jobforge-engine/internal/config"
	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/events"
	"jobforge-engine/internal/ingest"
	"jobforge-engine/internal/secrets"
	"jobforge-engine/internal/source"
	"jobforge-engine/internal/source/adzuna"
	"jobforge-engine/internal/source/arbeitnow"
	"jobforge-engine/internal/source/jooble"
	"jobforge-engine/internal/source/jsearch"
	"jobforge-engine/internal/source/remoteok"
	"jobforge-engine/internal/source/remotive"
	"jobforge-engine/internal/source/util"
)

// buildFetchers assembles the rotation in a fixed order. JSearch is never
// part of it; its RapidAPI quota is too small for a 2h cadence and it only
// runs through the manual trigger.
func buildFetchers(cfg config.Config, creds secrets.Credentials) []source.Fetcher {
	limiter := util.NewHostLimiter(1.0, 2)

	var fetchers []source.Fetcher
	if cfg.Sources.Remotive.Enabled {
		fetchers = append(fetchers, remotive.New(remotive.Config{
			SearchTerms: cfg.Sources.Remotive.SearchTerms,
			MaxTerms:    cfg.Sources.Remotive.MaxTerms,
		}, limiter))
	}
	if cfg.Sources.RemoteOK.Enabled {
		fetchers = append(fetchers, remoteok.New(remoteok.Config{}))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		fetchers = append(fetchers, arbeitnow.New(arbeitnow.Config{}))
	}
	if cfg.Sources.Adzuna.Enabled {
		fetchers = append(fetchers, adzuna.New(adzuna.Config{
			AppID:      creds.AdzunaAppID,
			AppKey:     creds.AdzunaAppKey,
			Country:    cfg.Sources.Adzuna.Country,
			Queries:    cfg.Sources.Adzuna.Queries,
			MaxQueries: cfg.Sources.Adzuna.MaxQueries,
		}, limiter))
	}
	if cfg.Sources.Jooble.Enabled {
		fetchers = append(fetchers, jooble.New(jooble.Config{
			APIKey:      creds.JoobleAPIKey,
			Location:    cfg.Sources.Jooble.Location,
			Keywords:    cfg.Sources.Jooble.Keywords,
			MaxKeywords: cfg.Sources.Jooble.MaxKeywords,
		}, limiter))
	}

	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	log.Printf("[ingest] rotation sources=%v", names)
	return fetchers
}

// buildQuotaRunner returns the handler backing the manual JSearch trigger,
// or nil when the source is disabled or has no key.
func buildQuotaRunner(cfg config.Config, creds secrets.Credentials, db *sql.DB, hub *events.Hub) func(context.Context) ingest.RunSummary {
	if !cfg.Sources.JSearch.Enabled || creds.RapidAPIKey == "" {
		return nil
	}
	runner := &ingest.Runner{
		DB: db,
		Fetchers: []source.Fetcher{jsearch.New(jsearch.Config{
			APIKey:     creds.RapidAPIKey,
			Queries:    cfg.Sources.JSearch.Queries,
			MaxQueries: cfg.Sources.JSearch.MaxQueries,
		})},
		Delay: time.Duration(cfg.Ingest.SourceDelaySeconds) * time.Second,
		OnSaved: func(p domain.JobPosting) {
			hub.Publish(events.JobCreated(p.URL, p.Title, string(p.Source)))
		},
		OnDone: func(sum ingest.RunSummary) {
			hub.Publish(events.RunFinished(sum))
		},
	}
	return func(ctx context.Context) ingest.RunSummary {
		return runner.RunOnce(ctx)
	}
}
