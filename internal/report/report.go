// Package report assembles the finished numeric arrays and summary
// scalars handed to the external visualization collaborator, and
// round-trips them through JSON so plotting can happen out of process.
package report

import (
	"fmt"
	"time"

	"auilqec/internal/analysis"
	"auilqec/internal/config"
)

// Report is the complete payload of one comparison run: per-code
// curves with their threshold pair, the classification summaries, the
// per-curve statistics, and one seeded trial with its paired AUIL
// trace. Everything in it is derived and immutable; rendering is the
// consumer's concern.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	SystemSize  int       `json:"system_size"`
	Grid        []float64 `json:"grid"`

	Curves          []CodeCurves     `json:"curves"`
	Classifications []Classification `json:"classifications"`
	Summaries       []Summary        `json:"summaries"`
	Trial           TrialTrace       `json:"trial"`
}

// CodeCurves bundles everything plotted per code.
type CodeCurves struct {
	Code          string    `json:"code"`
	QEC           []float64 `json:"qec"`
	AUIL          []float64 `json:"auil"`
	Residual      []float64 `json:"residual"`
	ThresholdQEC  float64   `json:"threshold_qec"`
	ThresholdAUIL float64   `json:"threshold_auil"`
}

// Classification mirrors analysis.Classification for serialization.
type Classification struct {
	Code              string  `json:"code"`
	TruePositiveRate  float64 `json:"true_positive_rate"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
}

// Summary mirrors analysis.CurveSummary for serialization.
type Summary struct {
	Code      string  `json:"code"`
	Model     string  `json:"model"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Crossed   bool    `json:"crossed"`
	Crossover float64 `json:"crossover,omitempty"`
}

// TrialTrace is the single stochastic realization plus the
// deterministic AUIL detection trace over the trial grid.
type TrialTrace struct {
	Code         string    `json:"code"`
	Seed         int64     `json:"seed"`
	Grid         []float64 `json:"grid"`
	Survived     []bool    `json:"survived"`
	AUILDetected []bool    `json:"auil_detected"`
}

// Build runs the full comparison for one configuration and assembles
// the payload. The configuration is validated first; every failure
// below that is a defect surfaced by the underlying component.
func Build(cfg config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	set, err := analysis.Sweep(cfg)
	if err != nil {
		return nil, err
	}

	rpt := &Report{
		GeneratedAt: time.Now().UTC(),
		SystemSize:  cfg.SystemSize,
		Grid:        cfg.Grid,
		Curves:      make([]CodeCurves, 0, len(cfg.Codes)),
	}

	for _, code := range cfg.Codes {
		residual, err := analysis.Residual(set, code)
		if err != nil {
			return nil, err
		}
		rpt.Curves = append(rpt.Curves, CodeCurves{
			Code:          string(code),
			QEC:           set.QEC[code].Values,
			AUIL:          set.AUIL[code].Values,
			Residual:      residual,
			ThresholdQEC:  cfg.ThresholdQEC[code],
			ThresholdAUIL: cfg.ThresholdAUIL[code],
		})
	}

	classifications, err := analysis.Classify(set)
	if err != nil {
		return nil, err
	}
	for _, c := range classifications {
		rpt.Classifications = append(rpt.Classifications, Classification{
			Code:              string(c.Code),
			TruePositiveRate:  c.TruePositiveRate,
			FalsePositiveRate: c.FalsePositiveRate,
		})
	}

	summaries, err := analysis.Summarize(set, cfg)
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		rpt.Summaries = append(rpt.Summaries, Summary{
			Code:      string(s.Code),
			Model:     string(s.Kind),
			Count:     s.Count,
			Mean:      s.Mean,
			Min:       s.Min,
			Max:       s.Max,
			Crossed:   s.Crossed,
			Crossover: s.Crossover,
		})
	}

	trial, err := analysis.NewTrialGenerator(cfg.TrialSeed).Run(cfg.TrialCode, cfg.TrialGrid, cfg.SystemSize)
	if err != nil {
		return nil, err
	}
	rpt.Trial = TrialTrace{
		Code:         string(trial.Code),
		Seed:         cfg.TrialSeed,
		Grid:         trial.Grid,
		Survived:     trial.Survived,
		AUILDetected: trial.AUILDetected,
	}

	return rpt, nil
}
