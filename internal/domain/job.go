package domain

import "time"

// Source identifies which upstream API a posting came from.
type Source string

const (
	SourceRemotive  Source = "remotive"
	SourceRemoteOK  Source = "remoteok"
	SourceArbeitnow Source = "arbeitnow"
	SourceAdzuna    Source = "adzuna"
	SourceJooble    Source = "jooble"
	SourceJSearch   Source = "jsearch"
)

type JobType string

const (
	TypeInternship JobType = "INTERNSHIP"
	TypeFullTime   JobType = "FULL_TIME"
	TypePartTime   JobType = "PART_TIME"
	TypeContract   JobType = "CONTRACT"
)

type Category string

const (
	CategoryAIML     Category = "AI_ML"
	CategoryData     Category = "DATA"
	CategorySoftware Category = "SOFTWARE"
	CategoryNonTech  Category = "NON_TECH"
)

// JobPosting is the canonical persisted record. URL is the natural key;
// the store keeps at most one row per URL and the first writer wins.
type JobPosting struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	URL             string    `json:"url"`
	Source          Source    `json:"source"`
	Verified        bool      `json:"verified"`
	Type            JobType   `json:"type"`
	Category        Category  `json:"category"`
	IsRemote        bool      `json:"isRemote"`
	IsIndiaEligible bool      `json:"isIndiaEligible"`
	PostedAt        time.Time `json:"postedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RawPosting is the loosely-typed shape an adapter hands to the normalizer.
// It never reaches the store.
type RawPosting struct {
	Title       string
	Company     string
	Location    string
	Description string
	Salary      string
	URL         string
	PostedAt    *time.Time
	Remote      bool // explicit source flag; text heuristics can still set it
}
