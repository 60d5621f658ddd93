// Package normalize maps a source-specific RawPosting into the canonical
// JobPosting shape the store expects.
package normalize

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobforge-engine/internal/classify"
	"jobforge-engine/internal/domain"
)

const (
	maxDescriptionChars = 2000

	defaultTitle    = "Untitled Position"
	defaultCompany  = "Unknown Company"
	defaultLocation = "Not Specified"
)

// Normalize builds the canonical posting for one raw record. Field order
// matters: defaults and description flattening run before classification so
// the classifiers see the same text that gets stored.
func Normalize(raw domain.RawPosting, src domain.Source) domain.JobPosting {
	title := fallback(CleanText(raw.Title), defaultTitle)
	company := fallback(CleanText(raw.Company), defaultCompany)
	location := fallback(CleanText(raw.Location), defaultLocation)

	desc := FlattenHTML(strings.TrimSpace(raw.Description))
	desc = truncate(desc, maxDescriptionChars)

	roleText := title + " " + desc
	placeText := location + " " + desc

	isRemote := classify.IsRemote(raw.Remote, placeText)

	postedAt := time.Now().UTC()
	if raw.PostedAt != nil && !raw.PostedAt.IsZero() {
		postedAt = raw.PostedAt.UTC()
	}

	return domain.JobPosting{
		Title:           title,
		Company:         company,
		Location:        location,
		Description:     desc,
		Salary:          strings.TrimSpace(raw.Salary),
		URL:             strings.TrimSpace(raw.URL),
		Source:          src,
		Verified:        true,
		Type:            classify.JobTypeOf(roleText),
		Category:        classify.CategoryOf(roleText),
		IsRemote:        isRemote,
		IsIndiaEligible: classify.IsIndiaEligible(isRemote, placeText),
		PostedAt:        postedAt,
	}
}

// CleanText collapses whitespace and strips non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// FlattenHTML reduces an HTML fragment to plain text. Several sources ship
// descriptions as HTML; storing markup would skew both classification and
// the downstream catalog.
func FlattenHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return CleanText(s)
	}
	// Pad tags so adjacent blocks don't glue their text together.
	s = strings.ReplaceAll(s, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(doc.Text())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
