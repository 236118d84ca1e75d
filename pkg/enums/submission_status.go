package enums

import "fmt"

// SubmissionStatus tracks where a quote session sits in the submit flow.
type SubmissionStatus string

const (
	SubmissionStatusIdle       SubmissionStatus = "idle"
	SubmissionStatusSubmitting SubmissionStatus = "submitting"
	SubmissionStatusSubmitted  SubmissionStatus = "submitted"
	SubmissionStatusFailed     SubmissionStatus = "failed"
)

var validSubmissionStatuses = []SubmissionStatus{
	SubmissionStatusIdle,
	SubmissionStatusSubmitting,
	SubmissionStatusSubmitted,
	SubmissionStatusFailed,
}

// String implements fmt.Stringer.
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubmissionStatus.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubmissionStatus converts raw input into a SubmissionStatus.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	for _, candidate := range validSubmissionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}
