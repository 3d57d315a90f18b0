package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/skills"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description with an LLM and the skill taxonomy",
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx, html or text)")
	scoreCmd.Flags().String("job", "", "job description file (pdf, docx, html or text)")
	scoreCmd.Flags().BoolP("interactive", "i", false, "choose the llm provider from a menu")

	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("job")
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	interactive, _ := cmd.Flags().GetBool("interactive")

	jobDescription, err := readDocument(s.logger, jobPath)
	if err != nil {
		return err
	}

	resumeText, err := readDocument(s.logger, resumePath)
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(s.config.AI, s.logger)
	if err != nil {
		return err
	}

	provider, err := chooseProvider(s.config.Provider, creds, interactive, promptProvider)
	if err != nil {
		return err
	}

	s.logger.Info("scoring resume", zap.String("resume", resumePath), zap.String("provider", provider.Label()))

	scorer := scoring.NewScorer(newGateway(s.config, s.logger), s.logger)
	evaluator := ats.NewEvaluator(scorer, ats.Options{
		Provider:    provider,
		Credentials: creds,
		Taxonomy:    skills.Default(),
		Logger:      s.logger,
	})

	report := evaluator.Evaluate(ctx, jobDescription, ats.Input{Name: filepath.Base(resumePath), Text: resumeText})
	if err := ctx.Err(); err != nil {
		return err
	}

	return ats.Render(cmd.OutOrStdout(), s.format, report)
}
