package filtering

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/skills"
)

func report(name string, final int, coverage float64, required ...string) *ats.Report {
	return &ats.Report{
		Resume:   name,
		Scored:   true,
		Record:   scoring.Record{SkillsScore: final, FinalScore: final},
		Coverage: coverage,
		Skills:   skills.Match{Required: required},
	}
}

func sample() *ats.Reports {
	return &ats.Reports{Items: []*ats.Report{
		report("strong", 88, 100, "sql"),
		report("failed", 0, 100, "sql"),
		report("weak", 55, 100, "sql"),
		report("narrow", 75, 20, "sql", "python"),
		report("generic", 72, 0),
	}}
}

func TestRunDefaultPipeline(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{MinScore: 70, MinCoverage: 50}

	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := got.Names()
	want := []string{"strong", "generic"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 step log entries, got %d", len(steps))
	}
	first := steps[0].ContextMap()
	if first["name"] != "failed" || first["dropped"] != int64(1) || first["left"] != int64(4) {
		t.Fatalf("unexpected failed step accounting: %v", first)
	}
}

func TestRunKeepFailedAndZeroThresholds(t *testing.T) {
	got, err := Run(context.Background(), &Config{KeepFailed: true}, Deps{}, Default(), sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 5 {
		t.Fatalf("expected nothing dropped, got %v", got.Names())
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "score above range", cfg: &Config{MinScore: 101}},
		{name: "negative coverage", cfg: &Config{MinCoverage: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tc.cfg, Deps{}, Default(), sample()); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestDisableByName(t *testing.T) {
	steps := Default()
	DisableByName(steps, "min_score", "skills-only run")

	got, err := Run(context.Background(), &Config{MinScore: 90}, Deps{}, steps, sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("expected only the failed report to be dropped, got %v", got.Names())
	}

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[1].Name != "min_score" || statuses[1].Enabled || statuses[1].Reason != "skills-only run" {
		t.Fatalf("unexpected status: %+v", statuses[1])
	}
	if statuses[2].Details["min_coverage"] != "0.0" {
		t.Fatalf("unexpected coverage details: %v", statuses[2].Details)
	}
}
