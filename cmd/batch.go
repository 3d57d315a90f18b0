package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/filtering"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/skills"
)

var batchCmd = &cobra.Command{
	Use:   "batch RESUME...",
	Short: "Score many resumes against one job description and print a shortlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("job", "", "job description file (pdf, docx, html or text)")
	batchCmd.Flags().IntP("threshold", "t", ats.DefaultThreshold, "minimum final score for the shortlist")
	batchCmd.Flags().IntP("concurrency", "c", ats.DefaultConcurrency, "resumes evaluated in parallel")
	batchCmd.Flags().Float64("min-coverage", 0, "minimum required skill coverage in percent")
	batchCmd.Flags().Bool("keep-failed", false, "keep resumes the llm could not score")
	batchCmd.Flags().Bool("skills-only", false, "do not call an llm, rank by skill overlap only")
	batchCmd.Flags().StringP("exclude-file", "e", "", "file with resumes reviewed in earlier runs. Default is unset.")
	batchCmd.Flags().Bool("append-excluded", false, "append every evaluated resume to the exclude file")
	batchCmd.Flags().Bool("dump", false, "dump all reports to a temporary json file")
	batchCmd.Flags().Bool("report-missing", false, "log resumes grouped by missing skill")
	batchCmd.Flags().Bool("details", false, "print the full report for every shortlisted resume")

	batchCmd.MarkFlagRequired("job")

	viper.BindPFlag("batch.threshold", batchCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("batch.min-coverage", batchCmd.Flags().Lookup("min-coverage"))
	viper.BindPFlag("batch.keep-failed", batchCmd.Flags().Lookup("keep-failed"))
	viper.BindPFlag("batch.exclude-file", batchCmd.Flags().Lookup("exclude-file"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	cfg := s.config.Batch
	jobPath, _ := cmd.Flags().GetString("job")
	skillsOnly, _ := cmd.Flags().GetBool("skills-only")

	jobDescription, err := readDocument(s.logger, jobPath)
	if err != nil {
		return err
	}

	var excluded *ats.ExcludedResumes
	if cfg.ExcludeFile != "" {
		excluded, err = ats.LoadExcluded(cfg.ExcludeFile)
		if err != nil {
			return fmt.Errorf("loading exclude file: %w", err)
		}
	}

	paths := pendingResumes(args, excluded, s.logger)
	if len(paths) == 0 {
		s.logger.Info("exiting", zap.String("reason", "no resumes left to evaluate"))
		return nil
	}

	inputs := make([]ats.Input, 0, len(paths))
	for _, path := range paths {
		text, err := readDocument(s.logger, path)
		if err != nil {
			return err
		}
		inputs = append(inputs, ats.Input{Name: path, Text: text})
	}

	opts := ats.Options{Taxonomy: skills.Default(), Logger: s.logger}
	var scorer ats.Scorer
	if !skillsOnly {
		creds, err := resolveCredentials(s.config.AI, s.logger)
		if err != nil {
			return err
		}

		provider, err := chooseProvider(s.config.Provider, creds, false, nil)
		if err != nil {
			return err
		}

		opts.Provider = provider
		opts.Credentials = creds
		scorer = scoring.NewScorer(newGateway(s.config, s.logger), s.logger)
		s.logger.Info("starting the batch", zap.Int("resumes", len(inputs)), zap.String("provider", provider.Label()))
	}

	reports, err := ats.NewEvaluator(scorer, opts).EvaluateBatch(ctx, jobDescription, inputs, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("evaluating resumes: %w", err)
	}

	evaluated := &ats.Reports{Items: slices.Clone(reports.Items)}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := evaluated.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump reports to file: %w", err)
		}
		s.logger.Info("dumping reports to file", zap.String("filename", filename))
	}

	if missing, _ := cmd.Flags().GetBool("report-missing"); missing {
		pretty, err := missingSkillsReport(evaluated)
		if err != nil {
			return err
		}
		s.logger.Info(pretty, zap.Int("resumes count", evaluated.Len()))
	}

	threshold := cfg.Threshold
	steps := filtering.Default()
	if skillsOnly {
		threshold = 0
		filtering.DisableByName(steps, "failed", "skills-only run")
		filtering.DisableByName(steps, "min_score", "skills-only run")
	}

	filtered, err := filtering.Run(ctx, &filtering.Config{
		MinScore:    threshold,
		MinCoverage: cfg.MinCoverage,
		KeepFailed:  cfg.KeepFailed,
	}, filtering.Deps{Logger: s.logger}, steps, reports)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	var shortlist []*ats.Report
	if skillsOnly {
		shortlist = ats.RankByCoverage(filtered.Items)
	} else {
		shortlist = ats.FilterTop(filtered.Items, threshold)
	}
	s.logger.Info("shortlist ready", zap.Int("evaluated", evaluated.Len()), zap.Int("shortlisted", len(shortlist)))

	if err := renderBatch(cmd, s.format, shortlist); err != nil {
		return err
	}

	if appendExcluded, _ := cmd.Flags().GetBool("append-excluded"); appendExcluded {
		if cfg.ExcludeFile == "" {
			return fmt.Errorf("--append-excluded requires an exclude file")
		}
		if excluded == nil {
			excluded = &ats.ExcludedResumes{}
		}

		excluded.Append(evaluated.ToExcluded("reviewed"))
		if err := excluded.ToFile(cfg.ExcludeFile); err != nil {
			return fmt.Errorf("writing exclude file: %w", err)
		}
		s.logger.Info("appended to exclude file", zap.String("filename", cfg.ExcludeFile), zap.Int("count", evaluated.Len()))
	}

	return nil
}

// missingSkillsReport renders resume names grouped by missing skill as
// indented JSON.
func missingSkillsReport(reports *ats.Reports) (string, error) {
	pretty, err := json.MarshalIndent(reports.ReportByMissingSkill(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("report by missing skill: %w", err)
	}
	return string(pretty), nil
}

// pendingResumes drops paths already listed in the exclude file.
func pendingResumes(paths []string, excluded *ats.ExcludedResumes, log *zap.Logger) []string {
	if excluded == nil || len(excluded.Items) == 0 {
		return paths
	}

	seen := make(map[string]bool, len(excluded.Items))
	for _, name := range excluded.Names() {
		seen[name] = true
	}

	var pending, skipped []string
	for _, path := range paths {
		if seen[path] {
			skipped = append(skipped, path)
			continue
		}
		pending = append(pending, path)
	}

	if len(skipped) > 0 {
		log.Info("skipping resumes from exclude file", zap.Strings("resumes", skipped), zap.Int("resumes_left", len(pending)))
	}

	return pending
}

func renderBatch(cmd *cobra.Command, format ats.Format, shortlist []*ats.Report) error {
	w := cmd.OutOrStdout()
	if format == ats.FormatJSON {
		return ats.Render(w, format, shortlist...)
	}

	if err := ats.RenderSummary(w, shortlist); err != nil {
		return err
	}

	details, _ := cmd.Flags().GetBool("details")
	if !details {
		return nil
	}

	for _, report := range shortlist {
		fmt.Fprintln(w)
		if err := ats.Render(w, format, report); err != nil {
			return err
		}
	}
	return nil
}
