package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"auilqec/internal/analysis"
	"auilqec/internal/config"
	"auilqec/internal/model"
	"auilqec/internal/report"
)

func main() {
	// Command line flags
	var (
		configFile = flag.String("config", "", "Optional YAML config override file")
		mode       = flag.String("mode", "classify", "Analysis mode: sweep, residual, classify, summary, trial, estimate")
		codeLabel  = flag.String("code", "", "Code to analyze (residual/trial/estimate modes; default from config)")
		outFile    = flag.String("out", "", "Write the full report JSON to this path")
		workers    = flag.Int("workers", 3, "Worker count for the parallel sweep")
		noiseP     = flag.Float64("p", 0.1, "Noise probability (estimate mode)")
		runs       = flag.Int("runs", 0, "Run count override (estimate mode)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	code := cfg.TrialCode
	if *codeLabel != "" {
		parsed, err := model.ParseCode(*codeLabel)
		if err != nil {
			log.Fatalf("Invalid code: %v", err)
		}
		code = parsed
	}

	set, err := analysis.SweepParallel(context.Background(), cfg, *workers)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	fmt.Printf("Swept %d codes over %d grid points (n=%d)\n\n", len(cfg.Codes), len(cfg.Grid), cfg.SystemSize)

	switch *mode {
	case "sweep":
		runSweep(set)

	case "residual":
		runResidual(set, code)

	case "classify":
		runClassify(set)

	case "summary":
		runSummary(set, cfg)

	case "trial":
		runTrial(cfg, code)

	case "estimate":
		runEstimate(cfg, code, *noiseP, *runs)

	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}

	if *outFile != "" {
		rpt, err := report.Build(cfg)
		if err != nil {
			log.Fatalf("Failed to build report: %v", err)
		}
		if err := report.WriteFile(*outFile, rpt); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		fmt.Printf("\nReport written to %s\n", *outFile)
	}
}

func runSweep(set *analysis.CurveSet) {
	fmt.Println("Survival and Signal Curves")
	fmt.Println("==========================")

	for _, code := range set.Codes {
		fmt.Printf("\n%s:\n", code)
		fmt.Printf("%10s  %12s  %12s\n", "p", "QEC", "AUIL")
		for i, p := range set.Grid {
			fmt.Printf("%10.4f  %12.6g  %12.6g\n", p, set.QEC[code].Values[i], set.AUIL[code].Values[i])
		}
	}
}

func runResidual(set *analysis.CurveSet, code model.Code) {
	fmt.Printf("Residual (QEC - AUIL) for %s\n", code)
	fmt.Println("==============================")

	residual, err := analysis.Residual(set, code)
	if err != nil {
		log.Fatalf("Residual failed: %v", err)
	}

	for i, p := range set.Grid {
		fmt.Printf("p=%.4f  residual=%+.6g\n", p, residual[i])
	}
}

func runClassify(set *analysis.CurveSet) {
	fmt.Println("Detection Rates (QEC truth, AUIL predictor)")
	fmt.Println("===========================================")

	results, err := analysis.Classify(set)
	if err != nil {
		log.Fatalf("Classify failed: %v", err)
	}

	for _, r := range results {
		fmt.Printf("%-14s TPR=%.4f  FPR=%.4f\n", r.Code, r.TruePositiveRate, r.FalsePositiveRate)
	}
}

func runSummary(set *analysis.CurveSet, cfg config.Config) {
	fmt.Println("Curve Summaries")
	fmt.Println("===============")

	summaries, err := analysis.Summarize(set, cfg)
	if err != nil {
		log.Fatalf("Summarize failed: %v", err)
	}

	for _, s := range summaries {
		crossover := "never"
		if s.Crossed {
			crossover = fmt.Sprintf("p=%.4f", s.Crossover)
		}
		fmt.Printf("%-14s %-5s mean=%.6f min=%.4g max=%.4g crossover=%s\n",
			s.Code, s.Kind, s.Mean, s.Min, s.Max, crossover)
	}
}

func runTrial(cfg config.Config, code model.Code) {
	fmt.Printf("Seeded Trial (code=%s, seed=%d)\n", code, cfg.TrialSeed)
	fmt.Println("================================")

	trial, err := analysis.NewTrialGenerator(cfg.TrialSeed).Run(code, cfg.TrialGrid, cfg.SystemSize)
	if err != nil {
		log.Fatalf("Trial failed: %v", err)
	}

	for i, p := range trial.Grid {
		fmt.Printf("p=%.4f  survived=%-5v  auil=%v\n", p, trial.Survived[i], trial.AUILDetected[i])
	}
}

func runEstimate(cfg config.Config, code model.Code, p float64, runs int) {
	if runs < 1 {
		runs = cfg.Runs
	}

	fmt.Printf("Monte Carlo Survival Estimate (%d runs)\n", runs)
	fmt.Println("=======================================")

	analytic, err := model.LogicalSurvival(code, p, cfg.SystemSize)
	if err != nil {
		log.Fatalf("Survival model failed: %v", err)
	}

	estimate, err := analysis.NewTrialGenerator(cfg.TrialSeed).EstimateSurvival(code, p, cfg.SystemSize, runs)
	if err != nil {
		log.Fatalf("Estimate failed: %v", err)
	}

	fmt.Printf("Code:              %s\n", code)
	fmt.Printf("Noise probability: %.6f\n", p)
	fmt.Printf("Analytic survival: %.6f\n", analytic)
	fmt.Printf("Observed fraction: %.6f\n", estimate)
}
