package model

// AUILSignal returns the universal AUIL detection signal at noise
// probability p for a system of n physical qubits:
//
//	signal = max(0, 1 - n*p)
//
// The signal is code-independent by construction: it is strictly
// positive only while p < 1/n and zero everywhere else, regardless of
// which code protects the system. The code parameter exists only to
// keep the model call signatures uniform and is ignored.
//
// The clamped value is a signal magnitude, not a probability.
func AUILSignal(_ Code, p float64, n int) float64 {
	s := 1 - float64(n)*p
	if s < 0 {
		return 0
	}
	return s
}
