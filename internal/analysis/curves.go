package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"auilqec/internal/config"
	"auilqec/internal/model"
)

// ModelKind tags a curve with the model that produced it.
type ModelKind string

const (
	ModelQEC  ModelKind = "qec"
	ModelAUIL ModelKind = "auil"
)

// Curve is an ordered sequence of model values, one per grid point.
// QEC values are survival probabilities in [0,1]; AUIL values are
// non-negative signal magnitudes.
type Curve struct {
	Kind   ModelKind
	Code   model.Code
	Values []float64
}

// CurveSet holds both model sweeps for every configured code. Codes
// preserves the configuration's presentation order; the maps are keyed
// by code for direct lookup.
type CurveSet struct {
	Grid  []float64
	Codes []model.Code
	QEC   map[model.Code]Curve
	AUIL  map[model.Code]Curve
}

// Sweep evaluates both models over the full noise grid for every
// configured code. Evaluation is pointwise and recurrence-free, so the
// output depends only on the configuration, never on evaluation order.
func Sweep(cfg config.Config) (*CurveSet, error) {
	set := newCurveSet(cfg)
	for _, code := range cfg.Codes {
		if err := sweepCode(cfg, code, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// SweepParallel evaluates the same sweep with one worker per code,
// bounded by workers. Results are identical to Sweep: each worker
// writes only its own code's preallocated curves.
func SweepParallel(ctx context.Context, cfg config.Config, workers int) (*CurveSet, error) {
	if workers < 1 {
		workers = 1
	}

	set := newCurveSet(cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, code := range cfg.Codes {
		code := code
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return sweepCode(cfg, code, set)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

func newCurveSet(cfg config.Config) *CurveSet {
	set := &CurveSet{
		Grid:  cfg.Grid,
		Codes: cfg.Codes,
		QEC:   make(map[model.Code]Curve, len(cfg.Codes)),
		AUIL:  make(map[model.Code]Curve, len(cfg.Codes)),
	}
	for _, code := range cfg.Codes {
		set.QEC[code] = Curve{Kind: ModelQEC, Code: code, Values: make([]float64, len(cfg.Grid))}
		set.AUIL[code] = Curve{Kind: ModelAUIL, Code: code, Values: make([]float64, len(cfg.Grid))}
	}
	return set
}

func sweepCode(cfg config.Config, code model.Code, set *CurveSet) error {
	qec := set.QEC[code].Values
	auil := set.AUIL[code].Values

	for i, p := range cfg.Grid {
		survival, err := model.LogicalSurvival(code, p, cfg.SystemSize)
		if err != nil {
			return fmt.Errorf("sweep failed at grid point %d (p=%g): %w", i, p, err)
		}
		qec[i] = survival
		auil[i] = model.AUILSignal(code, p, cfg.SystemSize)
	}
	return nil
}
