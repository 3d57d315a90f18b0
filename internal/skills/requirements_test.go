package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRequirements(t *testing.T) {
	jd := `Senior Data Analyst
About us: we build analytics tools.
Requirements
- 3+ years of SQL
Strong Python skills
BENEFITS
Remote friendly
You must communicate clearly.
- 3+ years of SQL`

	assert.Equal(t, []string{
		"Requirements",
		"- 3+ years of SQL",
		"Strong Python skills",
		"Remote friendly",
		"You must communicate clearly.",
	}, ExtractRequirements(jd))
}

func TestExtractRequirementsSectionLookaheadIsBounded(t *testing.T) {
	jd := "Qualifications\n1 one\n2 two\n3 three\n4 four\n5 five\n6 six\n7 seven\n8 eight\n9 nine\n10 ten\n11 eleven"

	got := ExtractRequirements(jd)

	assert.Contains(t, got, "10 ten")
	assert.NotContains(t, got, "11 eleven")
}

func TestExtractRequirementsFallsBackToAllLines(t *testing.T) {
	assert.Equal(t, []string{"Great team", "Free snacks"}, ExtractRequirements("Great team\n\n  Free snacks  "))
}

func TestExtractRequirementsFallbackRemovesDuplicates(t *testing.T) {
	jd := "Great team\nFree snacks\n  Great team\nFree snacks"

	assert.Equal(t, []string{"Great team", "Free snacks"}, ExtractRequirements(jd))
}

func TestExtractRequirementsDropsShortLines(t *testing.T) {
	assert.Equal(t, []string{"* Kubernetes"}, ExtractRequirements("* Go\n* Kubernetes"))
}
