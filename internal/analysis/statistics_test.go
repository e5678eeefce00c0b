package analysis

import (
	"errors"
	"math"
	"testing"

	"auilqec/internal/config"
	"auilqec/internal/model"
)

// TestSummarize_ToyModel pins the summary scalars for the default
// parameters: every curve reads 1.0 at p=0 and collapses by the first
// positive grid point.
func TestSummarize_ToyModel(t *testing.T) {
	cfg := config.Default()

	set, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	summaries, err := Summarize(set, cfg)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if len(summaries) != 2*len(cfg.Codes) {
		t.Fatalf("expected %d summaries, got %d", 2*len(cfg.Codes), len(summaries))
	}

	for _, s := range summaries {
		if s.Count != len(cfg.Grid) {
			t.Errorf("%s/%s count: got %d, want %d", s.Kind, s.Code, s.Count, len(cfg.Grid))
		}
		if s.Max != 1.0 || s.Min != 0.0 {
			t.Errorf("%s/%s range: got [%g, %g], want [0, 1]", s.Kind, s.Code, s.Min, s.Max)
		}
		// Only the p=0 point contributes to the mean.
		wantMean := 1.0 / float64(len(cfg.Grid))
		if math.Abs(s.Mean-wantMean) > 1e-15 {
			t.Errorf("%s/%s mean: got %g, want %g", s.Kind, s.Code, s.Mean, wantMean)
		}
		// Both models cross their thresholds at the first positive
		// grid point, p=0.025.
		if !s.Crossed {
			t.Errorf("%s/%s never crossed its threshold", s.Kind, s.Code)
			continue
		}
		if math.Abs(s.Crossover-0.025) > 1e-12 {
			t.Errorf("%s/%s crossover: got %g, want 0.025", s.Kind, s.Code, s.Crossover)
		}
	}
}

// TestSummarize_NoCrossing verifies Crossed stays false when a curve
// holds above its threshold across the whole grid.
func TestSummarize_NoCrossing(t *testing.T) {
	cfg := config.Default()
	cfg.SystemSize = 1
	cfg.Codes = []model.Code{model.BitFlip}
	cfg.Grid = config.Linspace(0, 0.5, 6)
	cfg.ThresholdQEC = map[model.Code]float64{model.BitFlip: 0.05}
	cfg.ThresholdAUIL = map[model.Code]float64{model.BitFlip: 1.0}

	set, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	summaries, err := Summarize(set, cfg)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	// n=1 bit-flip survival is (1-p) + p = 1 everywhere: never below
	// the 0.05 cutoff.
	if summaries[0].Crossed {
		t.Errorf("QEC curve should not cross: crossover %g", summaries[0].Crossover)
	}
	// AUIL signal 1-p drops below 1.0 at the first positive point.
	if !summaries[1].Crossed || summaries[1].Crossover != 0.1 {
		t.Errorf("AUIL crossover: got (%v, %g), want (true, 0.1)", summaries[1].Crossed, summaries[1].Crossover)
	}
}

// TestSummarize_EmptyGrid verifies the degenerate grid error.
func TestSummarize_EmptyGrid(t *testing.T) {
	cfg := config.Default()
	set := &CurveSet{Codes: cfg.Codes}

	_, err := Summarize(set, cfg)
	if err == nil {
		t.Fatal("expected error for empty grid, got nil")
	}

	var degenerate *DegenerateGridError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected *DegenerateGridError, got %T", err)
	}
}
