package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "non-positive limit drops everything",
			input:  "Education Score: 80",
			limit:  0,
			expect: "",
		},
		{
			name:   "short reply is kept",
			input:  "Final Score: 72",
			limit:  40,
			expect: "Final Score: 72",
		},
		{
			name:   "long reply gets an ellipsis",
			input:  "Skills Reasoning: strong python background",
			limit:  16,
			expect: "Skills Reasoning...",
		},
		{
			name:   "surrounding whitespace is trimmed first",
			input:  "\n  prompt  \n",
			limit:  4,
			expect: "prom...",
		},
		{
			name:   "counts runes not bytes",
			input:  "•• python",
			limit:  2,
			expect: "••...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
