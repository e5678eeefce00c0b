package analysis

import (
	"context"
	"testing"

	"auilqec/internal/config"
)

// BenchmarkSweep measures the full sequential sweep over the default
// 41-point grid and three codes.
func BenchmarkSweep(b *testing.B) {
	cfg := config.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sweep(cfg); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSweepParallel measures the worker-pool sweep on a dense grid
// where parallelism has something to chew on.
func BenchmarkSweepParallel(b *testing.B) {
	cfg := config.Default()
	cfg.Grid = config.Linspace(0, 1, 4001)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SweepParallel(context.Background(), cfg, 3); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkClassify measures metric derivation on a dense grid.
func BenchmarkClassify(b *testing.B) {
	cfg := config.Default()
	cfg.Grid = config.Linspace(0, 1, 4001)

	set, err := Sweep(cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Classify(set); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTrial measures one seeded trial over the default trial grid.
func BenchmarkTrial(b *testing.B) {
	cfg := config.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen := NewTrialGenerator(cfg.TrialSeed)
		if _, err := gen.Run(cfg.TrialCode, cfg.TrialGrid, cfg.SystemSize); err != nil {
			b.Fatal(err)
		}
	}
}
