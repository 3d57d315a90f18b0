// Package ats evaluates resumes against a job description and renders the
// resulting reports.
package ats

import (
	"time"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/skills"
)

// DefaultThreshold is the final score a resume needs to make the shortlist.
const DefaultThreshold = 70

// Report is the outcome of evaluating one resume.
type Report struct {
	ID       string      `json:"id"`
	Resume   string      `json:"resume"`
	Provider ai.Provider `json:"provider,omitempty"`

	// Scored is false when the LLM was not asked, e.g. for skills-only runs.
	Scored        bool           `json:"scored"`
	Record        scoring.Record `json:"scores"`
	WeightedScore int            `json:"weighted_score"`

	Skills       skills.Match `json:"skills"`
	Coverage     float64      `json:"skill_coverage"`
	Requirements []string     `json:"requirements"`

	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
}

// FinalScore is the score reported by the model, limited to 0..100.
func (r *Report) FinalScore() int {
	if r == nil {
		return 0
	}
	return scoring.ClampScore(r.Record.FinalScore)
}

// Failed reports whether scoring was requested but produced no scores.
func (r *Report) Failed() bool {
	return r != nil && r.Scored && r.Record.NoScores()
}
