package analysis

import (
	"fmt"

	"auilqec/internal/config"
	"auilqec/internal/model"
)

// CurveSummary condenses one curve into the scalars a heatmap or
// threshold overlay needs: value range, mean, and the noise probability
// where the curve first drops below its configured threshold.
type CurveSummary struct {
	Code  model.Code
	Kind  ModelKind
	Count int
	Mean  float64
	Min   float64
	Max   float64

	// Crossover is the first grid point at which the curve falls below
	// the threshold for its model kind. Crossed is false when the curve
	// stays above the threshold across the whole grid.
	Crossover float64
	Crossed   bool
}

// Summarize computes summaries for both curves of every code, in code
// order (QEC first, then AUIL, per code).
func Summarize(set *CurveSet, cfg config.Config) ([]CurveSummary, error) {
	if len(set.Grid) == 0 {
		return nil, &DegenerateGridError{Op: "summarize"}
	}

	summaries := make([]CurveSummary, 0, 2*len(set.Codes))
	for _, code := range set.Codes {
		qec, err := summarizeCurve(set.QEC[code], set.Grid, cfg.ThresholdQEC[code])
		if err != nil {
			return nil, err
		}
		auil, err := summarizeCurve(set.AUIL[code], set.Grid, cfg.ThresholdAUIL[code])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, qec, auil)
	}
	return summaries, nil
}

func summarizeCurve(curve Curve, grid []float64, threshold float64) (CurveSummary, error) {
	if len(curve.Values) != len(grid) {
		return CurveSummary{}, fmt.Errorf("curve %s/%s has %d values for %d grid points",
			curve.Kind, curve.Code, len(curve.Values), len(grid))
	}

	s := CurveSummary{
		Code:  curve.Code,
		Kind:  curve.Kind,
		Count: len(curve.Values),
		Min:   curve.Values[0],
		Max:   curve.Values[0],
	}

	var sum float64
	for _, v := range curve.Values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(curve.Values))

	for i, v := range curve.Values {
		if v < threshold {
			s.Crossover = grid[i]
			s.Crossed = true
			break
		}
	}
	return s, nil
}
