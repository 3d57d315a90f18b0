package skills

// Match is the skill overlap between a job description and a resume.
type Match struct {
	// Required are the taxonomy skills named by the job description.
	Required []string `json:"required"`
	// Found are all skills detected in the resume, taxonomy and heuristic.
	Found []string `json:"found"`
	// Matched are the required skills the resume covers.
	Matched []string `json:"matched"`
	// Missing are the required skills the resume lacks.
	Missing []string `json:"missing"`
}

// Match reconciles the job description's required skills against the resume.
// The job side only uses the taxonomy since postings use standard terms; the
// resume side also uses the looser freeform extractor.
func (t *Taxonomy) Match(jobDescription, resumeText string) Match {
	required := t.ExtractWhitelisted(jobDescription)
	found := t.ExtractWhitelisted(resumeText).Union(ExtractFreeform(resumeText))

	matched := make(Set)
	missing := make(Set)
	for skill := range required {
		if found.Has(skill) {
			matched.Add(skill)
		} else {
			missing.Add(skill)
		}
	}

	return Match{
		Required: required.Sorted(),
		Found:    found.Sorted(),
		Matched:  matched.Sorted(),
		Missing:  missing.Sorted(),
	}
}

// MatchSkills matches using the default taxonomy.
func MatchSkills(jobDescription, resumeText string) Match {
	return defaultTaxonomy.Match(jobDescription, resumeText)
}

// Coverage is the share of required skills that matched, in percent. It is 0
// when the job description names no known skill.
func (m Match) Coverage() float64 {
	if len(m.Required) == 0 {
		return 0
	}
	return float64(len(m.Matched)) / float64(len(m.Required)) * 100
}
