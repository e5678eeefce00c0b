package model

import "fmt"

// Code identifies one of the supported quantum error-correction code
// families. The set is closed; Codes defines the canonical order used
// for every per-code output downstream.
type Code string

const (
	BitFlip      Code = "bit-flip"
	PhaseFlip    Code = "phase-flip"
	Depolarizing Code = "depolarizing"
)

// Codes returns the supported codes in canonical presentation order.
func Codes() []Code {
	return []Code{BitFlip, PhaseFlip, Depolarizing}
}

// ParseCode validates a code label and returns the typed identifier.
func ParseCode(s string) (Code, error) {
	switch Code(s) {
	case BitFlip, PhaseFlip, Depolarizing:
		return Code(s), nil
	}
	return "", &UnsupportedCodeError{Code: Code(s)}
}

// UnsupportedCodeError reports a code identifier outside the supported
// set. It signals a configuration defect upstream, not a runtime
// condition to recover from.
type UnsupportedCodeError struct {
	Code Code
}

func (e *UnsupportedCodeError) Error() string {
	return fmt.Sprintf("unsupported code %q", string(e.Code))
}
