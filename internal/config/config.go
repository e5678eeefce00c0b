package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"auilqec/internal/model"
)

// Config carries every static parameter of a comparison run. It is
// constructed once, validated, and passed read-only into each component;
// no component mutates it or keeps hidden package-level state.
type Config struct {
	Codes      []model.Code
	SystemSize int

	// Grid is the sweep grid of noise probabilities, strictly
	// increasing in [0, 1]. TrialGrid is the coarser grid used for the
	// single stochastic trial.
	Grid      []float64
	TrialGrid []float64

	ThresholdQEC  map[model.Code]float64
	ThresholdAUIL map[model.Code]float64

	TrialCode model.Code
	TrialSeed int64

	// Runs is the trial count used for statistical traces.
	Runs int
}

// Default returns the toy-model parameters: 2^20 physical qubits, a
// 41-point sweep grid and a 50-point trial grid over [0, 1], QEC
// thresholds of 0.5, and AUIL thresholds of 1/n for every code.
func Default() Config {
	codes := model.Codes()
	n := 1 << 20

	qec := make(map[model.Code]float64, len(codes))
	auil := make(map[model.Code]float64, len(codes))
	for _, c := range codes {
		qec[c] = 0.5
		auil[c] = 1.0 / float64(n)
	}

	return Config{
		Codes:         codes,
		SystemSize:    n,
		Grid:          Linspace(0, 1, 41),
		TrialGrid:     Linspace(0, 1, 50),
		ThresholdQEC:  qec,
		ThresholdAUIL: auil,
		TrialCode:     model.BitFlip,
		TrialSeed:     42,
		Runs:          500000,
	}
}

// Linspace returns count evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, count int) []float64 {
	if count < 2 {
		return []float64{lo}
	}
	vals := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	vals[count-1] = hi
	return vals
}

// Validate rejects configurations that would make downstream
// computation meaningless. Failures here are defects in construction,
// not runtime conditions.
func (c Config) Validate() error {
	if len(c.Codes) == 0 {
		return fmt.Errorf("no codes configured")
	}
	if c.SystemSize < 1 {
		return fmt.Errorf("system size must be at least 1, got %d", c.SystemSize)
	}

	for _, code := range c.Codes {
		if _, err := model.ParseCode(string(code)); err != nil {
			return err
		}
		if _, ok := c.ThresholdQEC[code]; !ok {
			return fmt.Errorf("missing QEC threshold for code %q", code)
		}
		auil, ok := c.ThresholdAUIL[code]
		if !ok {
			return fmt.Errorf("missing AUIL threshold for code %q", code)
		}
		// The AUIL threshold table is 1/n by construction and must
		// match the signal's zero-crossing.
		if auil != 1.0/float64(c.SystemSize) {
			return fmt.Errorf("AUIL threshold for %q is %g, want 1/n = %g",
				code, auil, 1.0/float64(c.SystemSize))
		}
	}

	if err := validateGrid("grid", c.Grid); err != nil {
		return err
	}
	if err := validateGrid("trial grid", c.TrialGrid); err != nil {
		return err
	}

	if _, err := model.ParseCode(string(c.TrialCode)); err != nil {
		return fmt.Errorf("trial code: %w", err)
	}
	if c.Runs < 1 {
		return fmt.Errorf("run count must be at least 1, got %d", c.Runs)
	}

	return nil
}

func validateGrid(name string, grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%s is empty", name)
	}
	for i, p := range grid {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s point %d out of [0,1]: %g", name, i, p)
		}
		if i > 0 && p <= grid[i-1] {
			return fmt.Errorf("%s not strictly increasing at point %d", name, i)
		}
	}
	return nil
}

// File is the YAML-facing schema for overriding the default
// configuration from the analysis CLI. Zero fields keep their defaults.
type File struct {
	Codes        []string `yaml:"codes"`
	SystemSize   int      `yaml:"system_size"`
	GridPoints   int      `yaml:"grid_points"`
	TrialPoints  int      `yaml:"trial_points"`
	TrialCode    string   `yaml:"trial_code"`
	Seed         *int64   `yaml:"seed"`
	Runs         int      `yaml:"runs"`
	QECThreshold *float64 `yaml:"qec_threshold"`
}

// Load reads a YAML override file and applies it over Default().
// The returned configuration is already validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := Default()

	if len(file.Codes) > 0 {
		codes := make([]model.Code, 0, len(file.Codes))
		for _, label := range file.Codes {
			code, err := model.ParseCode(label)
			if err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
			codes = append(codes, code)
		}
		cfg.Codes = codes
	}
	if file.SystemSize > 0 {
		cfg.SystemSize = file.SystemSize
	}
	if file.GridPoints > 0 {
		cfg.Grid = Linspace(0, 1, file.GridPoints)
	}
	if file.TrialPoints > 0 {
		cfg.TrialGrid = Linspace(0, 1, file.TrialPoints)
	}
	if file.TrialCode != "" {
		code, err := model.ParseCode(file.TrialCode)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.TrialCode = code
	}
	if file.Seed != nil {
		cfg.TrialSeed = *file.Seed
	}
	if file.Runs > 0 {
		cfg.Runs = file.Runs
	}

	// Rebuild both threshold tables for the resolved code list and
	// system size so the 1/n invariant holds after overrides.
	qecCut := 0.5
	if file.QECThreshold != nil {
		qecCut = *file.QECThreshold
	}
	qec := make(map[model.Code]float64, len(cfg.Codes))
	auil := make(map[model.Code]float64, len(cfg.Codes))
	for _, c := range cfg.Codes {
		qec[c] = qecCut
		auil[c] = 1.0 / float64(cfg.SystemSize)
	}
	cfg.ThresholdQEC = qec
	cfg.ThresholdAUIL = auil

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
