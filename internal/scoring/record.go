package scoring

import "math"

// Section weights used for the final score.
const (
	EducationWeight  = 0.25
	SkillsWeight     = 0.40
	ExperienceWeight = 0.35
)

// MaxScore is the upper bound of every numeric score. Records keep what the
// model replied; consumers clamp with ClampScore.
const MaxScore = 100

// ClampScore limits n to the 0..MaxScore range.
func ClampScore(n int) int {
	return max(0, min(n, MaxScore))
}

// Record is the normalized result of one LLM scoring call. The zero value is
// a valid record.
type Record struct {
	EducationScore        int    `json:"education_score" mapstructure:"educationscore"`
	EducationReasoning    string `json:"education_reasoning" mapstructure:"educationreasoning"`
	EducationSuggestions  string `json:"education_suggestions" mapstructure:"educationsuggestions"`
	SkillsScore           int    `json:"skills_score" mapstructure:"skillsscore"`
	SkillsReasoning       string `json:"skills_reasoning" mapstructure:"skillsreasoning"`
	SkillsSuggestions     string `json:"skills_suggestions" mapstructure:"skillssuggestions"`
	ExperienceScore       int    `json:"experience_score" mapstructure:"experiencescore"`
	ExperienceReasoning   string `json:"experience_reasoning" mapstructure:"experiencereasoning"`
	ExperienceSuggestions string `json:"experience_suggestions" mapstructure:"experiencesuggestions"`
	FinalScore            int    `json:"final_score" mapstructure:"finalscore"`
	OverallExplanation    string `json:"overall_explanation" mapstructure:"overallexplanation"`
}

// WeightedScore recomputes the final score from the section scores. Models
// often round or drift, so the report shows both.
func (r Record) WeightedScore() int {
	score := float64(ClampScore(r.EducationScore))*EducationWeight +
		float64(ClampScore(r.SkillsScore))*SkillsWeight +
		float64(ClampScore(r.ExperienceScore))*ExperienceWeight
	return int(math.Round(score))
}

// NoScores reports whether every numeric score is zero, which usually means
// the reply could not be parsed or the provider failed.
func (r Record) NoScores() bool {
	return r.EducationScore == 0 && r.SkillsScore == 0 && r.ExperienceScore == 0 && r.FinalScore == 0
}

// Clamped returns a copy of r with every score limited to 0..MaxScore.
func (r Record) Clamped() Record {
	r.EducationScore = ClampScore(r.EducationScore)
	r.SkillsScore = ClampScore(r.SkillsScore)
	r.ExperienceScore = ClampScore(r.ExperienceScore)
	r.FinalScore = ClampScore(r.FinalScore)
	return r
}
