package ats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Format selects the report output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Render writes reports to w. JSON output is a single report object when one
// report is given and an array otherwise.
func Render(w io.Writer, format Format, reports ...*Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		if reports == nil {
			reports = []*Report{}
		}
		return enc.Encode(reports)
	case FormatText, "":
		for i, report := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := renderText(w, report); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderSummary writes one line per report, for batch runs.
func RenderSummary(w io.Writer, reports []*Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRESUME\tFINAL\tWEIGHTED\tCOVERAGE\tMISSING")
	for i, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.0f%%\t%s\n",
			i+1, r.Resume, r.FinalScore(), r.WeightedScore, r.Coverage, joinOrNone(r.Skills.Missing))
	}
	return tw.Flush()
}

func renderText(w io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n", r.Resume)

	if r.Scored {
		rec := r.Record.Clamped()
		fmt.Fprintf(&b, "Final ATS score: %d/100 (weighted %d/100, %s)\n", rec.FinalScore, r.WeightedScore, r.Provider.Label())
		writeBlock(&b, "Overall explanation", rec.OverallExplanation)
	}

	b.WriteString("\nJob requirements:\n")
	for _, req := range r.Requirements {
		fmt.Fprintf(&b, "  - %s\n", req)
	}

	b.WriteString("\nSkills overview:\n")
	fmt.Fprintf(&b, "  Required: %s\n", joinOrNone(r.Skills.Required))
	fmt.Fprintf(&b, "  Matched:  %s\n", joinOrNone(r.Skills.Matched))
	fmt.Fprintf(&b, "  Missing:  %s\n", joinOrNone(r.Skills.Missing))
	fmt.Fprintf(&b, "  Found in resume: %s\n", joinOrNone(r.Skills.Found))
	fmt.Fprintf(&b, "  Coverage: %.0f%%\n", r.Coverage)

	if r.Scored {
		rec := r.Record.Clamped()
		b.WriteString("\nSection scores:\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  Education\t%d\t%s\n", rec.EducationScore, rec.EducationReasoning)
		fmt.Fprintf(tw, "  Skills\t%d\t%s\n", rec.SkillsScore, rec.SkillsReasoning)
		fmt.Fprintf(tw, "  Experience\t%d\t%s\n", rec.ExperienceScore, rec.ExperienceReasoning)
		if err := tw.Flush(); err != nil {
			return err
		}

		b.WriteString("\nSuggestions:\n")
		fmt.Fprintf(&b, "  Education: %s\n", orNone(rec.EducationSuggestions))
		fmt.Fprintf(&b, "  Skills: %s\n", orNone(rec.SkillsSuggestions))
		fmt.Fprintf(&b, "  Experience: %s\n", orNone(rec.ExperienceSuggestions))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBlock(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "%s:\n", title)
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
