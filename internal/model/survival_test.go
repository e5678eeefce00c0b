package model

import (
	"errors"
	"math"
	"testing"
)

const toyN = 1048576 // 2^20 physical qubits, the toy-model default

// TestLogicalSurvival_ZeroNoise verifies exact survival at p=0.
func TestLogicalSurvival_ZeroNoise(t *testing.T) {
	for _, code := range Codes() {
		s, err := LogicalSurvival(code, 0, toyN)
		if err != nil {
			t.Fatalf("LogicalSurvival(%s, 0) failed: %v", code, err)
		}
		if s != 1.0 {
			t.Errorf("expected survival=1.0 at p=0 for %s, got %g", code, s)
		}
	}
}

// TestLogicalSurvival_CertainFailure verifies survival 0 at p=1.
func TestLogicalSurvival_CertainFailure(t *testing.T) {
	for _, code := range Codes() {
		s, err := LogicalSurvival(code, 1, toyN)
		if err != nil {
			t.Fatalf("LogicalSurvival(%s, 1) failed: %v", code, err)
		}
		if s != 0.0 {
			t.Errorf("expected survival=0.0 at p=1 for %s, got %g", code, s)
		}
	}
}

// TestLogicalSurvival_SmallSystem checks the two-term formula against a
// hand-computed value where the naive power form is still exact.
func TestLogicalSurvival_SmallSystem(t *testing.T) {
	// n=3, p=0.1: (0.9)^3 + 3*0.1*(0.9)^2 = 0.729 + 0.243 = 0.972
	s, err := LogicalSurvival(BitFlip, 0.1, 3)
	if err != nil {
		t.Fatalf("LogicalSurvival failed: %v", err)
	}
	if math.Abs(s-0.972) > 1e-12 {
		t.Errorf("expected 0.972, got %.15f", s)
	}

	// Depolarizing drops the one-error term: (0.9)^3 = 0.729
	s, err = LogicalSurvival(Depolarizing, 0.1, 3)
	if err != nil {
		t.Fatalf("LogicalSurvival failed: %v", err)
	}
	if math.Abs(s-0.729) > 1e-12 {
		t.Errorf("expected 0.729, got %.15f", s)
	}
}

// TestLogicalSurvival_Underflow verifies that large-n evaluation
// underflows to 0.0 rather than producing NaN.
func TestLogicalSurvival_Underflow(t *testing.T) {
	for _, code := range Codes() {
		for _, p := range []float64{0.01, 0.5, 0.99} {
			s, err := LogicalSurvival(code, p, toyN)
			if err != nil {
				t.Fatalf("LogicalSurvival(%s, %g) failed: %v", code, p, err)
			}
			if math.IsNaN(s) {
				t.Fatalf("survival is NaN for %s at p=%g", code, p)
			}
			if s != 0.0 {
				t.Errorf("expected underflow to 0.0 for %s at p=%g, got %g", code, p, s)
			}
		}
	}
}

// TestLogicalSurvival_Range verifies survival is a probability across
// the full noise range for all codes.
func TestLogicalSurvival_Range(t *testing.T) {
	for _, code := range Codes() {
		for i := 0; i <= 40; i++ {
			p := float64(i) / 40
			s, err := LogicalSurvival(code, p, toyN)
			if err != nil {
				t.Fatalf("LogicalSurvival(%s, %g) failed: %v", code, p, err)
			}
			if s < 0 || s > 1 {
				t.Errorf("survival out of [0,1] for %s at p=%g: %g", code, p, s)
			}
		}
	}
}

// TestLogicalSurvival_UnknownCode verifies failure on an identifier
// outside the supported set.
func TestLogicalSurvival_UnknownCode(t *testing.T) {
	_, err := LogicalSurvival(Code("surface-17"), 0.1, toyN)
	if err == nil {
		t.Fatal("expected error for unknown code, got nil")
	}

	var unsupported *UnsupportedCodeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedCodeError, got %T", err)
	}
	if unsupported.Code != "surface-17" {
		t.Errorf("error carries wrong code: %q", unsupported.Code)
	}
}

// TestParseCode verifies label round-trips and rejection.
func TestParseCode(t *testing.T) {
	for _, code := range Codes() {
		parsed, err := ParseCode(string(code))
		if err != nil {
			t.Fatalf("ParseCode(%q) failed: %v", code, err)
		}
		if parsed != code {
			t.Errorf("ParseCode(%q) = %q", code, parsed)
		}
	}

	if _, err := ParseCode("steane"); err == nil {
		t.Error("expected error for unsupported label, got nil")
	}
}
