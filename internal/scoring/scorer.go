package scoring

import (
	"context"
	"errors"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"go.uber.org/zap"
)

// Querier sends a prompt to an LLM provider.
type Querier interface {
	Query(ctx context.Context, provider ai.Provider, prompt string, creds ai.Credentials) (string, error)
}

// Scorer asks an LLM to grade a resume against a job description.
type Scorer struct {
	querier Querier
	logger  *zap.Logger
}

func NewScorer(querier Querier, log *zap.Logger) *Scorer {
	return &Scorer{querier: querier, logger: logger.WithFields(log)}
}

// Score never returns an error: provider failures become a zeroed record
// whose explanation carries the failure.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDescription string, provider ai.Provider, creds ai.Credentials) Record {
	prompt := BuildPrompt(jobDescription, resumeText)

	reply, err := s.querier.Query(ctx, provider, prompt, creds)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var perr *ai.ProviderError
		if errors.As(err, &perr) {
			fields = append(fields, logger.ProviderFields(string(perr.Provider), "")...)
		}
		s.logger.Warn("llm scoring failed", fields...)
		return ProviderFailure(err)
	}

	record := ParseResponse(reply)
	if record.NoScores() {
		s.logger.Warn("llm reply produced no scores", logger.ProviderFields(string(provider), "")...)
	}

	s.logger.Debug("resume scored",
		zap.Int("final_score", record.FinalScore),
		zap.Int("weighted_score", record.WeightedScore()),
	)
	return record
}
