// Package classify derives job type, category, remote flag and regional
// eligibility from free text. Everything here is a pure function of its
// input so the rules can be tested without network or storage.
package classify

import (
	"regexp"
	"strings"

	"jobforge-engine/internal/domain"
)

type matcher func(text string) bool

func containsAny(needles ...string) matcher {
	return func(text string) bool {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return true
			}
		}
		return false
	}
}

func matchesAny(patterns ...string) matcher {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return func(text string) bool {
		for _, re := range res {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func anyOf(ms ...matcher) matcher {
	return func(text string) bool {
		for _, m := range ms {
			if m(text) {
				return true
			}
		}
		return false
	}
}

type typeRule struct {
	jobType domain.JobType
	match   matcher
}

// Evaluated in order; the first hit wins, so an internship that mentions
// contract work still classifies as INTERNSHIP.
var typeRules = []typeRule{
	{domain.TypeInternship, anyOf(
		matchesAny(`\bintern(ship)?s?\b`, `\btrainee\b`),
		containsAny("apprentice"),
	)},
	{domain.TypePartTime, containsAny("part-time", "part time", "parttime")},
	{domain.TypeContract, anyOf(
		containsAny("contract", "freelance", "temporary"),
		matchesAny(`\btemp\b`),
	)},
}

type categoryRule struct {
	category domain.Category
	match    matcher
}

var categoryRules = []categoryRule{
	{domain.CategoryAIML, anyOf(
		containsAny(
			"machine learning", "deep learning", "neural network",
			"computer vision", "natural language", "tensorflow", "pytorch",
			"generative ai", "llm",
		),
		matchesAny(`\bai\b`, `\bml\b`, `\bnlp\b`),
	)},
	{domain.CategoryData, anyOf(
		containsAny(
			"data scientist", "data engineer", "data analyst", "data analytics",
			"analytics", "data warehouse", "business intelligence",
			"tableau", "power bi", "looker",
		),
		matchesAny(`\betl\b`, `\bsql\b`, `\bbi\b`),
	)},
	{domain.CategorySoftware, anyOf(
		containsAny(
			"software", "developer", "engineer", "programmer",
			"frontend", "front-end", "front end",
			"backend", "back-end", "back end",
			"full stack", "full-stack", "fullstack",
			"devops", "sre", "cloud", "kubernetes", "docker",
			"javascript", "typescript", "python", "java", "golang", "rust",
			"react", "angular", "node", "mobile", "android", "ios", "flutter",
			"web develop",
		),
		matchesAny(`\baws\b`, `\bgcp\b`, `\bazure\b`, `\bqa\b`, `\btest(ing|er)?\b`),
	)},
}

var remoteMatch = containsAny(
	"remote", "work from home", "wfh", "anywhere", "distributed",
)

var indiaMatch = containsAny(
	"india", "bangalore", "bengaluru", "mumbai", "delhi", "new delhi",
	"hyderabad", "chennai", "pune", "gurgaon", "gurugram", "noida",
	"kolkata", "ahmedabad", "jaipur", "kochi", "chandigarh",
	"apac", "worldwide", "global", "anywhere",
)

// JobTypeOf classifies the employment type from title + description text.
func JobTypeOf(text string) domain.JobType {
	text = strings.ToLower(text)
	for _, r := range typeRules {
		if r.match(text) {
			return r.jobType
		}
	}
	return domain.TypeFullTime
}

// CategoryOf classifies the role category from title + description text.
func CategoryOf(text string) domain.Category {
	text = strings.ToLower(text)
	for _, r := range categoryRules {
		if r.match(text) {
			return r.category
		}
	}
	return domain.CategoryNonTech
}

// IsRemote reports whether a posting is remote: an explicit source flag
// OR-combined with a text heuristic over location + description. An
// explicit false does not veto a text match; that asymmetry is deliberate
// and matches how the sources report location.
func IsRemote(explicit bool, text string) bool {
	return explicit || remoteMatch(strings.ToLower(text))
}

// IsIndiaEligible reports whether a candidate in India can apply. Remote
// postings always qualify; otherwise the location/description text must
// mention India, a major Indian city, or a broad geographic qualifier.
func IsIndiaEligible(remote bool, text string) bool {
	if remote {
		return true
	}
	return indiaMatch(strings.ToLower(text))
}
