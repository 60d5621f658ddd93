package config

import (
	"errors"
	"fmt"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Ingest.IntervalMinutes < 5 {
		errs = append(errs, "ingest.interval_minutes must be >= 5 to stay inside upstream rate limits")
	}

	checkTerms := func(name string, terms []string) {
		for i, term := range terms {
			if strings.TrimSpace(term) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkTerms("sources.remotive.search_terms", cfg.Sources.Remotive.SearchTerms)
	checkTerms("sources.adzuna.queries", cfg.Sources.Adzuna.Queries)
	checkTerms("sources.jooble.keywords", cfg.Sources.Jooble.Keywords)
	checkTerms("sources.jsearch.queries", cfg.Sources.JSearch.Queries)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
