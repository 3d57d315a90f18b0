package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// sectionLookahead is how many lines under a requirements-like heading are
// treated as requirements.
const sectionLookahead = 10

var (
	bulletRe        = regexp.MustCompile(`^[\-•*]`)
	sectionHeaderRe = regexp.MustCompile(`(?i)^(?:requirements?|qualifications?|responsibilit(?:y|ies))`)
	capsHeadingRe   = regexp.MustCompile(`^[A-Z ]{4,}$`)
)

var requirementVerbs = []string{"require", "must", "should", "responsible", "expect", "qualif", "need"}

// ExtractRequirements pulls actionable requirement lines out of a job
// description: bullet lines, lines carrying requirement verbs, and up to ten
// lines following a Requirements / Qualifications / Responsibilities heading.
// Results keep document order without duplicates. When nothing qualifies every
// distinct non-blank line is returned.
func ExtractRequirements(jobDescription string) []string {
	var lines []string
	for _, line := range strings.Split(jobDescription, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	selected := make([]bool, len(lines))
	for i, line := range lines {
		lower := strings.ToLower(line)
		if bulletRe.MatchString(lower) || containsAny(lower, requirementVerbs) {
			selected[i] = true
		}

		if !sectionHeaderRe.MatchString(line) {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+sectionLookahead; j++ {
			if !capsHeadingRe.MatchString(lines[j]) {
				selected[j] = true
			}
		}
	}

	seen := make(map[string]bool)
	var requirements []string
	for i, line := range lines {
		if !selected[i] || seen[line] || utf8.RuneCountInString(line) <= 4 {
			continue
		}
		seen[line] = true
		requirements = append(requirements, line)
	}

	if len(requirements) == 0 {
		return dedupe(lines)
	}
	return requirements
}

func dedupe(lines []string) []string {
	if lines == nil {
		return nil
	}

	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
