// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Ingest struct {
		IntervalMinutes    int `yaml:"interval_minutes"`
		StalenessMinutes   int `yaml:"staleness_minutes"`
		SourceDelaySeconds int `yaml:"source_delay_seconds"`
	} `yaml:"ingest"`

	Sources struct {
		Remotive struct {
			Enabled     bool     `yaml:"enabled"`
			SearchTerms []string `yaml:"search_terms"`
			MaxTerms    int      `yaml:"max_terms"`
		} `yaml:"remotive"`

		RemoteOK struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"remoteok"`

		Arbeitnow struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"arbeitnow"`

		Adzuna struct {
			Enabled    bool     `yaml:"enabled"`
			Country    string   `yaml:"country"`
			Queries    []string `yaml:"queries"`
			MaxQueries int      `yaml:"max_queries"`
		} `yaml:"adzuna"`

		Jooble struct {
			Enabled     bool     `yaml:"enabled"`
			Location    string   `yaml:"location"`
			Keywords    []string `yaml:"keywords"`
			MaxKeywords int      `yaml:"max_keywords"`
		} `yaml:"jooble"`

		// JSearch never joins the scheduled rotation; its free tier allows
		// roughly ten requests a month. enabled here only gates the manual
		// trigger endpoint.
		JSearch struct {
			Enabled    bool     `yaml:"enabled"`
			Queries    []string `yaml:"queries"`
			MaxQueries int      `yaml:"max_queries"`
		} `yaml:"jsearch"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38472
	}
	if cfg.Ingest.IntervalMinutes <= 0 {
		cfg.Ingest.IntervalMinutes = 120
	}
	if cfg.Ingest.StalenessMinutes <= 0 {
		cfg.Ingest.StalenessMinutes = cfg.Ingest.IntervalMinutes
	}
	if cfg.Ingest.SourceDelaySeconds <= 0 {
		cfg.Ingest.SourceDelaySeconds = 2
	}
}
