package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFreeformSkillsSection(t *testing.T) {
	resume := "SUMMARY\nAnalyst.\nSKILLS: Tableau; Stakeholder Management • Forecasting\nEXPERIENCE\nAcme Corp"

	got := ExtractFreeform(resume)

	for _, want := range []string{"tableau", "stakeholder management", "forecasting", "acme corp"} {
		assert.True(t, got.Has(want), "expected %q in %v", want, got.Sorted())
	}
	for _, heading := range []string{"experience", "skills", "summary"} {
		assert.False(t, got.Has(heading), "section heading %q must be dropped", heading)
	}
}

func TestExtractFreeformListLines(t *testing.T) {
	got := ExtractFreeform("Tools used: go, c, sql, 2019.\nNo list on this line")

	assert.Equal(t, []string{"sql", "tools used: go"}, got.Sorted())
}

func TestExtractFreeformTokenFilters(t *testing.T) {
	long := strings.Repeat("x", 40)
	got := ExtractFreeform("ok, " + long + ", v1.2.3, 42, excel.")

	assert.Equal(t, []string{"excel", "v123"}, got.Sorted())
}

func TestExtractFreeformWindowIsBounded(t *testing.T) {
	filler := strings.Repeat("a", 450)
	got := ExtractFreeform("skills\n" + filler + "\nkubernetes")

	assert.False(t, got.Has("kubernetes"))
}

func TestExtractFreeformEmpty(t *testing.T) {
	assert.Empty(t, ExtractFreeform(""))
}
