package main

import (
	"fmt"
	"strings"

	"auilqec/internal/analysis"
	"auilqec/internal/config"
	"auilqec/internal/model"
)

// ThresholdScenario defines one system size to evaluate the two
// threshold tables against.
type ThresholdScenario struct {
	Name       string
	SystemSize int
	GridPoints int
}

func main() {
	fmt.Println("=======================================================")
	fmt.Println("AUIL/QEC — THRESHOLD SEPARATION ANALYSIS")
	fmt.Println("=======================================================")
	fmt.Println()

	scenarios := []ThresholdScenario{
		{Name: "Tiny (n=16)", SystemSize: 16, GridPoints: 41},
		{Name: "Small (n=1024)", SystemSize: 1024, GridPoints: 41},
		{Name: "Large (n=2^20)", SystemSize: 1 << 20, GridPoints: 41},
		{Name: "Dense grid (n=2^20, 401 pts)", SystemSize: 1 << 20, GridPoints: 401},
	}

	for _, scenario := range scenarios {
		if err := analyzeScenario(scenario); err != nil {
			fmt.Printf("Scenario '%s' failed: %v\n\n", scenario.Name, err)
			continue
		}
	}

	fmt.Println("=======================================================")
	fmt.Println("NOTES")
	fmt.Println("=======================================================")
	fmt.Println()
	fmt.Println("The survival model for bit-flip and phase-flip codes is the")
	fmt.Println("two-term single-error-correction approximation, not a full")
	fmt.Println("weight-enumerator sum. The AUIL threshold is 1/n by")
	fmt.Println("construction and collapses toward 0 as the system grows;")
	fmt.Println("the QEC cutoff stays fixed at 0.5. The gap between the two")
	fmt.Println("columns below is the separation the comparison measures.")
	fmt.Println()
}

func analyzeScenario(scenario ThresholdScenario) error {
	fmt.Printf("Scenario: %s\n", scenario.Name)
	fmt.Println(strings.Repeat("-", 55))

	cfg := config.Default()
	cfg.SystemSize = scenario.SystemSize
	cfg.Grid = config.Linspace(0, 1, scenario.GridPoints)

	qec := make(map[model.Code]float64, len(cfg.Codes))
	auil := make(map[model.Code]float64, len(cfg.Codes))
	for _, c := range cfg.Codes {
		qec[c] = 0.5
		auil[c] = 1.0 / float64(cfg.SystemSize)
	}
	cfg.ThresholdQEC = qec
	cfg.ThresholdAUIL = auil

	if err := cfg.Validate(); err != nil {
		return err
	}

	set, err := analysis.Sweep(cfg)
	if err != nil {
		return err
	}

	bars := analysis.Thresholds(cfg)
	summaries, err := analysis.Summarize(set, cfg)
	if err != nil {
		return err
	}
	rates, err := analysis.Classify(set)
	if err != nil {
		return err
	}

	fmt.Printf("  System size (n):         %d qubits\n", cfg.SystemSize)
	fmt.Printf("  Grid:                    %d points\n", len(cfg.Grid))
	fmt.Println()
	fmt.Printf("  %-14s %10s %12s %14s %10s %10s\n", "code", "QEC thr", "AUIL thr", "QEC crossover", "TPR", "FPR")

	for i, code := range bars.Codes {
		crossover := "never"
		// Summaries come in (QEC, AUIL) pairs per code.
		if s := summaries[2*i]; s.Crossed {
			crossover = fmt.Sprintf("p=%.4f", s.Crossover)
		}
		fmt.Printf("  %-14s %10.2f %12.3g %14s %10.4f %10.4f\n",
			code, bars.QEC[i], bars.AUIL[i], crossover,
			rates[i].TruePositiveRate, rates[i].FalsePositiveRate)
	}
	fmt.Println()

	return nil
}
