package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Built-in config used when no packaged default ships next to the binary.
const fallbackYAML = `app:
  port: 38472

ingest:
  interval_minutes: 120
  source_delay_seconds: 2

sources:
  remotive:
    enabled: true
    search_terms: ["software engineer", "data", "machine learning"]
    max_terms: 3
  remoteok:
    enabled: true
  arbeitnow:
    enabled: true
  adzuna:
    enabled: true
    country: in
    queries: ["software developer", "data analyst"]
    max_queries: 2
  jooble:
    enabled: true
    location: India
    keywords: ["software engineer", "data analyst"]
    max_keywords: 2
  jsearch:
    enabled: true
    queries: ["software engineer in india"]
    max_queries: 1
`

// EnsureUserConfig makes sure a config file exists in the data dir,
// seeding it from the packaged default or the built-in fallback.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if werr := os.WriteFile(userPath, []byte(fallbackYAML), 0o644); werr != nil {
			return "", werr
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
