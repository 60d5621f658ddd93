package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobforge-engine/internal/domain"
)

func TestJobTypeOf(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.JobType
	}{
		{"plain engineer", "Software Engineer building backend services", domain.TypeFullTime},
		{"internship", "Software Engineering Intern, Summer batch", domain.TypeInternship},
		{"trainee", "Graduate Trainee - Operations", domain.TypeInternship},
		{"part time", "Part-Time Customer Support", domain.TypePartTime},
		{"contract", "Contract Java Developer, 6 months", domain.TypeContract},
		{"freelance", "Freelance Designer", domain.TypeContract},
		// intern keywords fire before contract keywords
		{"intern beats contract", "Internship (contract-to-hire possible)", domain.TypeInternship},
		// "intern" must be a whole token; "international" is not an internship
		{"international", "International Sales Manager", domain.TypeFullTime},
		{"internal", "Internal Tools Engineer", domain.TypeFullTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, JobTypeOf(tc.text))
		})
	}
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Category
	}{
		{"ml engineer", "Machine Learning Engineer", domain.CategoryAIML},
		{"ai token", "AI Researcher", domain.CategoryAIML},
		{"data engineer", "Data Engineer (ETL, Airflow)", domain.CategoryData},
		{"sql analyst", "Analyst with strong SQL", domain.CategoryData},
		{"backend", "Backend Developer - Go", domain.CategorySoftware},
		{"qa", "QA Automation Specialist", domain.CategorySoftware},
		{"non tech", "Account Manager for the EMEA region", domain.CategoryNonTech},
		// AI/ML rules run before software rules
		{"ml beats software", "Software Engineer, machine learning platform", domain.CategoryAIML},
		// email addresses should not trip the ai token
		{"mail is not ai", "Send resume to jobs@acme.example, marketing role", domain.CategoryNonTech},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryOf(tc.text))
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote(true, "Bangalore office"))
	assert.True(t, IsRemote(false, "Remote - Worldwide"))
	assert.True(t, IsRemote(false, "this is a work from home position"))
	assert.True(t, IsRemote(false, "WFH friendly"))
	assert.False(t, IsRemote(false, "On-site, Berlin"))
	// explicit false does not override a text match
	assert.True(t, IsRemote(false, "100% remote team"))
}

func TestIsIndiaEligible(t *testing.T) {
	assert.True(t, IsIndiaEligible(true, "New York, NY"), "remote always qualifies")
	assert.True(t, IsIndiaEligible(false, "Bengaluru, India"))
	assert.True(t, IsIndiaEligible(false, "Gurugram office"))
	assert.True(t, IsIndiaEligible(false, "open to APAC candidates"))
	assert.True(t, IsIndiaEligible(false, "hiring worldwide"))
	assert.False(t, IsIndiaEligible(false, "London, UK"))
}
