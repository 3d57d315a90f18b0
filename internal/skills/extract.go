package skills

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// skillsWindow is how many characters after a "skills" marker are mined.
	skillsWindow = 400

	minTokenLen = 2
	maxTokenLen = 40
)

var (
	skillsSectionRe = regexp.MustCompile(fmt.Sprintf(`skills[\s:]*([\s\S]{0,%d})`, skillsWindow))
	delimiterRe     = regexp.MustCompile(`[\n,;•\-]`)
)

// sectionWords are resume headings that the delimiter split regularly
// captures as if they were skills.
var sectionWords = NewSet(
	"skills", "summary", "experience", "education", "work", "professional", "profile",
	"responsibilities", "projects", "objective", "certifications", "languages", "interests",
)

// ExtractWhitelisted returns every taxonomy phrase present in text.
func (t *Taxonomy) ExtractWhitelisted(text string) Set {
	found := make(Set)
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return found
	}

	for _, e := range t.entries {
		if !strings.Contains(text, e.phrase) {
			continue
		}
		if e.pattern.MatchString(text) {
			found.Add(e.phrase)
		}
	}
	return found
}

// ExtractWhitelisted runs the default taxonomy over text.
func ExtractWhitelisted(text string) Set {
	return defaultTaxonomy.ExtractWhitelisted(text)
}

// ExtractFreeform mines skill-like tokens from resume prose without consulting
// the taxonomy. It reads the text that follows every "skills" marker and every
// line that looks like a list (contains a comma or a bullet glyph).
func ExtractFreeform(text string) Set {
	found := make(Set)
	text = strings.ToLower(text)

	for _, m := range skillsSectionRe.FindAllStringSubmatch(text, -1) {
		addTokens(found, m[1])
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, ",") || strings.Contains(line, "•") {
			addTokens(found, line)
		}
	}

	for word := range sectionWords {
		delete(found, word)
	}
	return found
}

func addTokens(dst Set, block string) {
	for _, part := range delimiterRe.Split(block, -1) {
		token := strings.ReplaceAll(strings.TrimSpace(part), ".", "")
		if keepToken(token) {
			dst.Add(token)
		}
	}
}

func keepToken(token string) bool {
	n := utf8.RuneCountInString(token)
	if n <= minTokenLen || n >= maxTokenLen {
		return false
	}
	return strings.IndexFunc(token, unicode.IsLetter) >= 0
}
