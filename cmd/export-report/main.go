package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"auilqec/internal/config"
	"auilqec/internal/report"
)

// Builds the default comparison report and drops it into the data
// directory as a timestamped JSON file for the out-of-process plotter.
func main() {
	outDir := "data/reports"
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	rpt, err := report.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("sweep_%d.json", time.Now().Unix()))
	if err := report.WriteFile(path, rpt); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("Report written to %s (%d codes, %d grid points)", path, len(rpt.Curves), len(rpt.Grid))
}
