package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Compare resume skills with a job description without calling an LLM",
	RunE:  runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx, html or text)")
	skillsCmd.Flags().String("job", "", "job description file (pdf, docx, html or text)")

	skillsCmd.MarkFlagRequired("resume")
	skillsCmd.MarkFlagRequired("job")
}

func runSkills(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")

	jobDescription, err := readDocument(s.logger, jobPath)
	if err != nil {
		return err
	}

	resumeText, err := readDocument(s.logger, resumePath)
	if err != nil {
		return err
	}

	evaluator := ats.NewEvaluator(nil, ats.Options{Taxonomy: skills.Default(), Logger: s.logger})
	report := evaluator.Evaluate(cmd.Context(), jobDescription, ats.Input{Name: filepath.Base(resumePath), Text: resumeText})

	return ats.Render(cmd.OutOrStdout(), s.format, report)
}
