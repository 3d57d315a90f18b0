package scoring

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// ResponseKeys are the reply labels the model is asked to produce, in order.
// The parser recognises them after lower-casing and dropping whitespace.
var ResponseKeys = []string{
	"Education Score",
	"Education Reasoning",
	"Education Suggestions",
	"Skills Score",
	"Skills Reasoning",
	"Skills Suggestions",
	"Experience Score",
	"Experience Reasoning",
	"Experience Suggestions",
	"Final Score",
	"Overall Explanation",
}

// BuildPrompt fills the scoring template with the job description and resume.
// Inputs are inserted verbatim.
func BuildPrompt(jobDescription, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job Description:\n{{JOB_DESCRIPTION}}\n\nResume:\n{{RESUME_TEXT}}\n\nRespond with:\n{{RESPONSE_FORMAT}}\n"
	}

	// The format block goes in first so that placeholder-looking text inside
	// the resume or job description is never expanded.
	prompt := strings.ReplaceAll(template, "{{RESPONSE_FORMAT}}", responseFormat())
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{RESUME_TEXT}}", resumeText,
	).Replace(prompt)
}

func responseFormat() string {
	var b strings.Builder
	for _, key := range ResponseKeys {
		b.WriteString(key)
		b.WriteString(": ")
		if strings.HasSuffix(key, "Score") {
			b.WriteString("<number>")
		} else {
			b.WriteString("<text>")
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func normalizeKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), "")
}
