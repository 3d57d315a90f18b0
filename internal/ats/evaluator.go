package ats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/skills"
)

// DefaultConcurrency bounds parallel LLM calls in batch mode.
const DefaultConcurrency = 4

// Scorer grades a resume with an LLM.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDescription string, provider ai.Provider, creds ai.Credentials) scoring.Record
}

// Input is one resume to evaluate.
type Input struct {
	Name string
	Text string
}

type Options struct {
	Provider    ai.Provider
	Credentials ai.Credentials
	Taxonomy    *skills.Taxonomy
	Logger      *zap.Logger
}

// Evaluator combines LLM scoring with deterministic skill matching. A nil
// scorer gives skills-only reports.
type Evaluator struct {
	scorer   Scorer
	provider ai.Provider
	creds    ai.Credentials
	taxonomy *skills.Taxonomy
	logger   *zap.Logger
}

func NewEvaluator(scorer Scorer, opts Options) *Evaluator {
	taxonomy := opts.Taxonomy
	if taxonomy == nil {
		taxonomy = skills.Default()
	}

	return &Evaluator{
		scorer:   scorer,
		provider: opts.Provider,
		creds:    opts.Credentials,
		taxonomy: taxonomy,
		logger:   logger.WithFields(opts.Logger),
	}
}

// Evaluate never fails; scoring problems are carried inside the report.
func (e *Evaluator) Evaluate(ctx context.Context, jobDescription string, in Input) *Report {
	started := time.Now()
	report := &Report{
		ID:        uuid.NewString(),
		Resume:    in.Name,
		CreatedAt: started.UTC(),
	}

	log := logger.WithFields(e.logger, logger.EvaluationFields(report.ID, in.Name)...)
	log.Debug("evaluating resume")

	if e.scorer != nil {
		report.Scored = true
		report.Provider = e.provider
		report.Record = e.scorer.Score(ctx, in.Text, jobDescription, e.provider, e.creds)
		report.WeightedScore = report.Record.WeightedScore()
	}

	report.Skills = e.taxonomy.Match(jobDescription, in.Text)
	report.Coverage = report.Skills.Coverage()
	report.Requirements = skills.ExtractRequirements(jobDescription)
	if report.Requirements == nil {
		report.Requirements = []string{}
	}
	report.Duration = time.Since(started)

	log.Info("resume evaluated",
		zap.Bool("scored", report.Scored),
		zap.Int("final_score", report.FinalScore()),
		zap.Int("matched_skills", len(report.Skills.Matched)),
		zap.Int("missing_skills", len(report.Skills.Missing)),
		zap.Duration("duration", report.Duration),
	)

	if report.Failed() {
		log.Warn("llm returned no scores", zap.String("explanation", report.Record.OverallExplanation))
	}

	return report
}

// EvaluateBatch evaluates inputs in parallel, at most concurrency at a time.
// Reports come back in input order. The only error is context cancellation.
func (e *Evaluator) EvaluateBatch(ctx context.Context, jobDescription string, inputs []Input, concurrency int) (*Reports, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	items := make([]*Report, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = e.Evaluate(gctx, jobDescription, in)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("batch evaluated", zap.Int("resumes", len(items)), zap.Int("concurrency", concurrency))
	return &Reports{Items: items}, nil
}
