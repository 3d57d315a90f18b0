package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
)

// toggle carries the enable/disable bookkeeping shared by all steps.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type failedFilter struct {
	toggle
	keep bool
}

// NewFailed creates a filter that removes reports whose LLM scoring failed.
func NewFailed() Filter {
	return &failedFilter{}
}

func (f *failedFilter) Name() string { return "failed" }

func (f *failedFilter) Validate(cfg *Config) error {
	f.keep = cfg != nil && cfg.KeepFailed
	return nil
}

func (f *failedFilter) Apply(_ context.Context, deps Deps, r *ats.Reports) (*ats.Reports, Step, error) {
	initial := r.Len()
	if f.keep {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	excluded := r.RemoveWhere(func(report *ats.Report) bool { return report.Failed() })
	if len(excluded) > 0 {
		deps.Logger.Warn("excluding resumes without llm scores",
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *failedFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"keep_failed": strconv.FormatBool(f.keep)},
	}
}

type minScoreFilter struct {
	toggle
	threshold int
}

// NewMinScore creates a filter that removes reports below the score threshold.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinScore
	}
	if f.threshold < 0 || f.threshold > 100 {
		return fmt.Errorf("minimum score must be between 0 and 100, got %d", f.threshold)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, r *ats.Reports) (*ats.Reports, Step, error) {
	initial := r.Len()
	if f.threshold == 0 {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	excluded := r.RemoveWhere(func(report *ats.Report) bool { return report.FinalScore() < f.threshold })
	if len(excluded) > 0 {
		deps.Logger.Info("excluding resumes below the score threshold",
			zap.Int("threshold", f.threshold),
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"threshold": strconv.Itoa(f.threshold)},
	}
}

type minCoverageFilter struct {
	toggle
	coverage float64
}

// NewMinCoverage creates a filter that removes reports with too few of the
// required skills.
func NewMinCoverage() Filter {
	return &minCoverageFilter{}
}

func (f *minCoverageFilter) Name() string { return "min_coverage" }

func (f *minCoverageFilter) Validate(cfg *Config) error {
	f.coverage = 0
	if cfg != nil {
		f.coverage = cfg.MinCoverage
	}
	if f.coverage < 0 || f.coverage > 100 {
		return fmt.Errorf("minimum coverage must be between 0 and 100, got %.1f", f.coverage)
	}
	return nil
}

func (f *minCoverageFilter) Apply(_ context.Context, deps Deps, r *ats.Reports) (*ats.Reports, Step, error) {
	initial := r.Len()
	if f.coverage == 0 {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	// Coverage is meaningless when the job description names no known skill.
	excluded := r.RemoveWhere(func(report *ats.Report) bool {
		return len(report.Skills.Required) > 0 && report.Coverage < f.coverage
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding resumes by skill coverage",
			zap.Float64("min_coverage", f.coverage),
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minCoverageFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_coverage": strconv.FormatFloat(f.coverage, 'f', 1, 64)},
	}
}
