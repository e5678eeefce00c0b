package model

import (
	"math"
	"testing"
)

// TestAUILSignal_CodeIndependence verifies the signal ignores the code.
func TestAUILSignal_CodeIndependence(t *testing.T) {
	probs := []float64{0, 1e-7, 1.0 / toyN, 0.5, 1}

	for _, p := range probs {
		ref := AUILSignal(BitFlip, p, toyN)
		for _, code := range Codes() {
			if got := AUILSignal(code, p, toyN); got != ref {
				t.Errorf("signal differs across codes at p=%g: %g vs %g", p, got, ref)
			}
		}
	}
}

// TestAUILSignal_ZeroCrossing verifies the signal is 1-n*p below 1/n
// and exactly zero at and above it.
func TestAUILSignal_ZeroCrossing(t *testing.T) {
	crossing := 1.0 / toyN

	if got := AUILSignal(BitFlip, 0, toyN); got != 1.0 {
		t.Errorf("expected signal=1.0 at p=0, got %g", got)
	}

	p := crossing / 2
	want := 1 - float64(toyN)*p
	if got := AUILSignal(BitFlip, p, toyN); math.Abs(got-want) > 1e-15 {
		t.Errorf("expected signal=%g at p=%g, got %g", want, p, got)
	}

	for _, p := range []float64{crossing, crossing * 2, 0.5, 1} {
		if got := AUILSignal(BitFlip, p, toyN); got != 0 {
			t.Errorf("expected signal=0 at p=%g, got %g", p, got)
		}
	}
}

// TestAUILSignal_NonNegative verifies clamping across the full range.
func TestAUILSignal_NonNegative(t *testing.T) {
	for i := 0; i <= 40; i++ {
		p := float64(i) / 40
		if got := AUILSignal(Depolarizing, p, toyN); got < 0 {
			t.Errorf("negative signal %g at p=%g", got, p)
		}
	}
}
