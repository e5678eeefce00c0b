package analysis

import (
	"fmt"

	"auilqec/internal/config"
	"auilqec/internal/model"
)

// ClassificationCutoff is the fixed decision threshold applied to both
// curves when treating QEC as ground truth and AUIL as predictor. It is
// a constant of the comparison, not derived from the grid or system
// size.
const ClassificationCutoff = 0.5

// DegenerateGridError reports a comparison requested over an empty
// noise grid. Rates over zero points are undefined; callers must not
// substitute a default grid.
type DegenerateGridError struct {
	Op string
}

func (e *DegenerateGridError) Error() string {
	return fmt.Sprintf("%s: degenerate empty noise grid", e.Op)
}

// Residual returns the pointwise QEC minus AUIL difference for one
// code. It is defined at every grid point and may be negative.
func Residual(set *CurveSet, code model.Code) ([]float64, error) {
	qec, ok := set.QEC[code]
	if !ok {
		return nil, fmt.Errorf("no curves for code %q", code)
	}
	auil := set.AUIL[code]

	residual := make([]float64, len(qec.Values))
	for i := range qec.Values {
		residual[i] = qec.Values[i] - auil.Values[i]
	}
	return residual, nil
}

// Classification holds the binary detection rates for one code, with
// the QEC curve thresholded as truth and the AUIL curve as prediction.
type Classification struct {
	Code              model.Code
	TruePositiveRate  float64
	FalsePositiveRate float64
}

// Classify computes per-code true/false positive rates over the grid,
// in the set's code order. Both curves are cut at
// ClassificationCutoff: TPR is the fraction of points where truth and
// prediction are both positive, FPR the fraction where only the
// prediction is.
func Classify(set *CurveSet) ([]Classification, error) {
	if len(set.Grid) == 0 {
		return nil, &DegenerateGridError{Op: "classify"}
	}

	results := make([]Classification, 0, len(set.Codes))
	for _, code := range set.Codes {
		qec := set.QEC[code].Values
		auil := set.AUIL[code].Values

		var tp, fp int
		for i := range qec {
			truth := qec[i] > ClassificationCutoff
			pred := auil[i] > ClassificationCutoff
			if truth && pred {
				tp++
			}
			if !truth && pred {
				fp++
			}
		}

		total := float64(len(qec))
		results = append(results, Classification{
			Code:              code,
			TruePositiveRate:  float64(tp) / total,
			FalsePositiveRate: float64(fp) / total,
		})
	}
	return results, nil
}

// ThresholdBars re-keys the two threshold tables into parallel arrays
// in fixed code order, ready for a grouped bar rendering. No
// computation happens here.
type ThresholdBars struct {
	Codes []model.Code
	QEC   []float64
	AUIL  []float64
}

// Thresholds builds the bar data from the configuration tables.
func Thresholds(cfg config.Config) ThresholdBars {
	bars := ThresholdBars{
		Codes: cfg.Codes,
		QEC:   make([]float64, len(cfg.Codes)),
		AUIL:  make([]float64, len(cfg.Codes)),
	}
	for i, code := range cfg.Codes {
		bars.QEC[i] = cfg.ThresholdQEC[code]
		bars.AUIL[i] = cfg.ThresholdAUIL[code]
	}
	return bars
}
