package model

import "math"

// LogicalSurvival returns the probability that encoded logical
// information survives a noisy channel acting once per physical qubit,
// for a system of n physical qubits at per-qubit noise probability p.
//
// Single-error-type codes (bit-flip, phase-flip) use the
// single-error-correcting two-term model:
//
//	P(survive) = (1-p)^n + n*p*(1-p)^(n-1)
//
// i.e. zero errors or exactly one correctable error. This is a
// deliberate approximation of the toy model, not a full
// weight-enumerator sum over all correctable error patterns.
//
// The depolarizing channel tolerates no errors in this formulation:
//
//	P(survive) = (1-p)^n
//
// Both are evaluated in log space: for n on the order of 10^6 the naive
// power form loses precision near p=0, and for p bounded away from 0
// the result underflows. Log-space evaluation underflows cleanly to 0.0
// (never NaN), which is expected behavior, not an error.
//
// p must lie in [0, 1]; grid validation upstream enforces this.
func LogicalSurvival(code Code, p float64, n int) (float64, error) {
	// exp(n*log1p(-p)) is exact at the endpoints: 1.0 at p=0, 0.0 at p=1.
	zeroErrors := math.Exp(float64(n) * math.Log1p(-p))

	switch code {
	case BitFlip, PhaseFlip:
		oneError := math.Exp(math.Log(float64(n)) + math.Log(p) + float64(n-1)*math.Log1p(-p))
		return zeroErrors + oneError, nil
	case Depolarizing:
		return zeroErrors, nil
	}
	return 0, &UnsupportedCodeError{Code: code}
}
