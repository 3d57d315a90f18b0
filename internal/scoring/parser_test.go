package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReply = `Education Score: 80
Education Reasoning: BSc in Statistics.
Education Suggestions: Mention relevant coursework.
Skills Score: 85 / 100 (strong)
Skills Reasoning: SQL and Python match: both required.
Skills Suggestions: Add Tableau.
Experience Score: 70
Experience Reasoning: Three years as analyst.
Experience Suggestions: Quantify impact.
Final Score: 79
Overall Explanation: Solid fit for the role.`

func TestParseResponseFullReply(t *testing.T) {
	got := ParseResponse(fullReply)

	assert.Equal(t, Record{
		EducationScore:        80,
		EducationReasoning:    "BSc in Statistics.",
		EducationSuggestions:  "Mention relevant coursework.",
		SkillsScore:           85,
		SkillsReasoning:       "SQL and Python match: both required.",
		SkillsSuggestions:     "Add Tableau.",
		ExperienceScore:       70,
		ExperienceReasoning:   "Three years as analyst.",
		ExperienceSuggestions: "Quantify impact.",
		FinalScore:            79,
		OverallExplanation:    "Solid fit for the role.",
	}, got)
}

func TestParseResponseEmpty(t *testing.T) {
	for _, raw := range []string{"", "  \n\t "} {
		got := ParseResponse(raw)

		assert.Zero(t, got.EducationScore)
		assert.Zero(t, got.SkillsScore)
		assert.Zero(t, got.ExperienceScore)
		assert.Zero(t, got.FinalScore)
		assert.Contains(t, strings.ToLower(got.OverallExplanation), "error")
		assert.Contains(t, got.OverallExplanation, "[DEBUG: Raw LLM output]")
	}
}

func TestParseResponseMissingKey(t *testing.T) {
	var lines []string
	for _, line := range strings.Split(fullReply, "\n") {
		if !strings.HasPrefix(line, "Skills Score") {
			lines = append(lines, line)
		}
	}

	got := ParseResponse(strings.Join(lines, "\n"))

	assert.Zero(t, got.SkillsScore)
	assert.Equal(t, 80, got.EducationScore)
	assert.Equal(t, 70, got.ExperienceScore)
	assert.Equal(t, 79, got.FinalScore)
	assert.Equal(t, "Add Tableau.", got.SkillsSuggestions)
	assert.Equal(t, "Solid fit for the role.", got.OverallExplanation)
}

func TestParseResponseIdempotent(t *testing.T) {
	for _, raw := range []string{fullReply, "", "garbage", "Final Score: 0"} {
		assert.Equal(t, ParseResponse(raw), ParseResponse(raw))
	}
}

func TestParseResponseScoreValues(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{value: "85 / 100 (strong)", want: 85},
		{value: "Score: 85", want: 85},
		{value: "85/100", want: 85},
		{value: "about 7", want: 7},
		{value: "n/a", want: 0},
		{value: "", want: 0},
		{value: "150", want: 150},
		{value: "99999999999999999999999", want: math.MaxInt},
		{value: "-20", want: 20},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got := ParseResponse("Final Score: " + tc.value + "\nSkills Score: 1")
			assert.Equal(t, tc.want, got.FinalScore)
		})
	}
}

func TestParseResponseAllZeroAppendsDebug(t *testing.T) {
	raw := "Education Score: 0\nSkills Score: 0\nExperience Score: 0\nFinal Score: 0\nOverall Explanation: Not a match."

	got := ParseResponse(raw)

	assert.Equal(t, "Not a match.\n\n[DEBUG: Raw LLM output]\n"+raw, got.OverallExplanation)
}

func TestParseResponseLooseFormatting(t *testing.T) {
	raw := "Sure! Here is the evaluation.\n\n  FINAL   score :92\nskillsscore: 88\nOverall Explanation: Ratio 3:1 of matches.\nUnknown Key: ignored\nFinal Score: 90"

	got := ParseResponse(raw)

	assert.Equal(t, 90, got.FinalScore, "later duplicate keys win")
	assert.Equal(t, 88, got.SkillsScore)
	assert.Equal(t, "Ratio 3:1 of matches.", got.OverallExplanation)
	assert.NotContains(t, got.OverallExplanation, "DEBUG")
}

func TestParseResponseWordErrorIsNotAFailure(t *testing.T) {
	raw := "Skills Score: 60\nSkills Reasoning: Error handling experience is thin.\nFinal Score: 61"

	got := ParseResponse(raw)

	assert.Equal(t, 60, got.SkillsScore)
	assert.Equal(t, 61, got.FinalScore)
	assert.Equal(t, "Error handling experience is thin.", got.SkillsReasoning)
}

func TestProviderFailure(t *testing.T) {
	got := ProviderFailure(errors.New("OpenAI GPT-4o error: 401 unauthorized"))

	require.True(t, got.NoScores())
	assert.Contains(t, got.OverallExplanation, "LLM error or empty response.")
	assert.Contains(t, got.OverallExplanation, "401 unauthorized")

	assert.Contains(t, ProviderFailure(nil).OverallExplanation, "unknown error")
}

func TestParseFailureEmbedsRaw(t *testing.T) {
	got := parseFailure(errors.New("boom"), "raw reply")

	assert.Equal(t, "Exception during parsing: boom\n\n[DEBUG: Raw LLM output]\nraw reply", got.OverallExplanation)
}

func TestWeightedScore(t *testing.T) {
	r := Record{EducationScore: 80, SkillsScore: 85, ExperienceScore: 70}

	// 20 + 34 + 24.5
	assert.Equal(t, 79, r.WeightedScore())
	assert.Zero(t, Record{}.WeightedScore())
}

func TestParseResponseDecoderFaults(t *testing.T) {
	raw := "Final Score: 80\nOverall Explanation: fine"

	tests := []struct {
		name    string
		decoder func(map[string]any, *Record) error
		want    string
	}{
		{
			name:    "decode error",
			decoder: func(map[string]any, *Record) error { return errors.New("bad field") },
			want:    "Exception during parsing: bad field",
		},
		{
			name: "panic",
			decoder: func(_ map[string]any, r *Record) error {
				r.FinalScore = 80
				panic("decoder exploded")
			},
			want: "Exception during parsing: decoder exploded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			original := decode
			decode = tc.decoder
			t.Cleanup(func() { decode = original })

			got := ParseResponse(raw)

			assert.Equal(t, tc.want+"\n\n[DEBUG: Raw LLM output]\n"+raw, got.OverallExplanation)
			assert.True(t, got.NoScores(), "a failed parse must not leak partial scores")
		})
	}
}

func TestOutOfRangeScoresAreClampedForUse(t *testing.T) {
	got := ParseResponse("Education Score: 150\nSkills Score: 100\nExperience Score: 100\nFinal Score: 120")

	assert.Equal(t, 150, got.EducationScore, "the record keeps the reply value")
	assert.Equal(t, 120, got.FinalScore)
	assert.Equal(t, 100, got.WeightedScore())

	clamped := got.Clamped()
	assert.Equal(t, 100, clamped.EducationScore)
	assert.Equal(t, 100, clamped.FinalScore)
	assert.Equal(t, 150, got.EducationScore, "Clamped must not modify the receiver")

	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 42, ClampScore(42))
	assert.Equal(t, MaxScore, ClampScore(math.MaxInt))
}
