// Package skills detects skills in resumes and job descriptions and reconciles
// them into matched and missing sets.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Category groups taxonomy phrases.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryBusiness  Category = "business"
	CategorySoft      Category = "soft"
)

var technicalSkills = []string{
	"python", "r", "java", "c++", "c#", "sql", "nosql", "mongodb", "mysql", "postgresql",
	"oracle", "excel", "powerpoint", "word", "tableau", "power bi", "sas", "stata", "matlab",
	"vba", "html", "css", "javascript", "typescript", "react", "angular", "node.js", "flask",
	"django", "spring", "aws", "azure", "gcp", "docker", "kubernetes", "git", "linux", "bash",
	"unix", "jira", "confluence", "rest api", "graphql", "machine learning", "deep learning",
	"nlp", "data science", "data analysis", "data visualization", "statistics", "regression",
	"classification", "clustering", "forecasting", "etl", "big data", "hadoop", "spark",
	"airflow", "ci/cd", "devops",
}

var businessSkills = []string{
	"project management", "agile", "scrum", "kanban", "stakeholder management", "budgeting",
	"forecasting", "business analysis", "requirement gathering", "risk management",
	"product management", "crm", "erp", "salesforce", "marketing", "seo", "sem",
	"content marketing", "digital marketing", "market research", "customer service",
	"supply chain", "logistics", "procurement", "negotiation", "accounting", "finance",
	"financial modeling", "investment analysis", "presentation", "public speaking",
	"report writing", "documentation", "training", "mentoring",
}

var softSkills = []string{
	"communication", "teamwork", "leadership", "problem solving", "critical thinking",
	"creative thinking", "adaptability", "time management", "organization", "collaboration",
	"conflict resolution", "decision making", "attention to detail", "initiative",
	"self-motivation", "empathy", "emotional intelligence", "persuasion", "networking",
	"active listening", "customer focus", "multitasking", "work ethic", "stress management",
	"flexibility", "analytical skills", "resourcefulness", "presentation skills",
}

type entry struct {
	phrase   string
	category Category
	pattern  *regexp.Regexp
}

// Taxonomy is an immutable set of known skill phrases. It is safe for
// concurrent use.
type Taxonomy struct {
	entries []entry
	index   map[string]int
}

var defaultTaxonomy = mustTaxonomy(map[Category][]string{
	CategoryTechnical: technicalSkills,
	CategoryBusiness:  businessSkills,
	CategorySoft:      softSkills,
})

// Default returns the built-in curated taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// NewTaxonomy builds a taxonomy from phrases grouped by category. Phrases are
// lower-cased and trimmed; a phrase listed under several categories keeps the
// first one in technical, business, soft order.
func NewTaxonomy(groups map[Category][]string) (*Taxonomy, error) {
	t := &Taxonomy{index: make(map[string]int)}

	for _, category := range []Category{CategoryTechnical, CategoryBusiness, CategorySoft} {
		for _, raw := range groups[category] {
			phrase := strings.ToLower(strings.TrimSpace(raw))
			if phrase == "" {
				continue
			}
			if _, ok := t.index[phrase]; ok {
				continue
			}

			pattern, err := boundaryPattern(phrase)
			if err != nil {
				return nil, err
			}

			t.index[phrase] = len(t.entries)
			t.entries = append(t.entries, entry{phrase: phrase, category: category, pattern: pattern})
		}
	}

	return t, nil
}

func mustTaxonomy(groups map[Category][]string) *Taxonomy {
	t, err := NewTaxonomy(groups)
	if err != nil {
		panic(err)
	}
	return t
}

// boundaryPattern matches phrase only when it is not glued to a letter, digit
// or underscore on either side. RE2 has no lookarounds, so the neighbours are
// consumed; that is fine because only the boolean result is used.
func boundaryPattern(phrase string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?:^|[^\pL\pN_])` + regexp.QuoteMeta(phrase) + `(?:$|[^\pL\pN_])`)
}

// Len reports the number of distinct phrases.
func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// Contains reports whether phrase is part of the taxonomy.
func (t *Taxonomy) Contains(phrase string) bool {
	_, ok := t.index[strings.ToLower(strings.TrimSpace(phrase))]
	return ok
}

// Category returns the group of phrase and whether it is known.
func (t *Taxonomy) Category(phrase string) (Category, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(phrase))]
	if !ok {
		return "", false
	}
	return t.entries[i].category, true
}

// Phrases returns every phrase, sorted.
func (t *Taxonomy) Phrases() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.phrase)
	}
	sort.Strings(out)
	return out
}
