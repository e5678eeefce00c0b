package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"auilqec/internal/model"
)

// WriteFile serializes a report to an indented JSON file, the handoff
// format consumed by the out-of-process plotter.
func WriteFile(path string, rpt *Report) error {
	data, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a report JSON file back and validates it.
//
// Guarantees:
// - Fails loudly on empty or malformed files
// - Rejects reports whose arrays disagree with their grid
// - Rejects unsupported code labels
func LoadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("report file is empty: %s", path)
	}

	var rpt Report
	if err := json.Unmarshal(data, &rpt); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}

	if err := validate(&rpt); err != nil {
		return nil, fmt.Errorf("invalid report %s: %w", path, err)
	}
	return &rpt, nil
}

// LoadDirectory reads every .json report in a directory, failing if
// any file fails to parse, and returns them ordered by generation
// time (oldest first) for deterministic downstream comparison.
func LoadDirectory(dirpath string) ([]*Report, error) {
	entries, err := os.ReadDir(dirpath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirpath, err)
	}

	var reports []*Report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		rpt, err := LoadFile(filepath.Join(dirpath, entry.Name()))
		if err != nil {
			return nil, err
		}
		reports = append(reports, rpt)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.Before(reports[j].GeneratedAt)
	})
	return reports, nil
}

func validate(rpt *Report) error {
	if rpt.SystemSize < 1 {
		return fmt.Errorf("system size must be at least 1, got %d", rpt.SystemSize)
	}
	if len(rpt.Grid) == 0 {
		return fmt.Errorf("empty grid")
	}
	if len(rpt.Curves) == 0 {
		return fmt.Errorf("no curves")
	}

	for i, c := range rpt.Curves {
		if _, err := model.ParseCode(c.Code); err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		if len(c.QEC) != len(rpt.Grid) || len(c.AUIL) != len(rpt.Grid) || len(c.Residual) != len(rpt.Grid) {
			return fmt.Errorf("curve %d (%s): array lengths disagree with %d-point grid", i, c.Code, len(rpt.Grid))
		}
	}

	if _, err := model.ParseCode(rpt.Trial.Code); err != nil {
		return fmt.Errorf("trial: %w", err)
	}
	if len(rpt.Trial.Survived) != len(rpt.Trial.Grid) || len(rpt.Trial.AUILDetected) != len(rpt.Trial.Grid) {
		return fmt.Errorf("trial traces disagree with %d-point trial grid", len(rpt.Trial.Grid))
	}

	return nil
}
