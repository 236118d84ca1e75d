package enums

import "fmt"

// FailureReason classifies why a quote submission failed.
type FailureReason string

const (
	FailureReasonNetwork    FailureReason = "network"
	FailureReasonValidation FailureReason = "validation"
	FailureReasonUnknown    FailureReason = "unknown"
)

var validFailureReasons = []FailureReason{
	FailureReasonNetwork,
	FailureReasonValidation,
	FailureReasonUnknown,
}

// String implements fmt.Stringer.
func (f FailureReason) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FailureReason.
func (f FailureReason) IsValid() bool {
	for _, candidate := range validFailureReasons {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFailureReason converts raw input into a FailureReason.
func ParseFailureReason(value string) (FailureReason, error) {
	for _, candidate := range validFailureReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid failure reason %q", value)
}
