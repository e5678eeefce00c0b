package main

import (
	"fmt"
	"log"

	"auilqec/internal/analysis"
	"auilqec/internal/config"
)

func main() {
	cfg := config.Default()

	gen := analysis.NewTrialGenerator(cfg.TrialSeed)
	trial, err := gen.Run(cfg.TrialCode, cfg.TrialGrid, cfg.SystemSize)
	if err != nil {
		log.Fatal(err)
	}

	survived := 0
	for _, ok := range trial.Survived {
		if ok {
			survived++
		}
	}

	fmt.Printf("Trial for %s (seed=%d): %d/%d points survived\n",
		trial.Code, cfg.TrialSeed, survived, len(trial.Survived))
}
