package v1alpha1

import "fmt"

// Severity level of a vulnerability.
// +enum
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"
)

// Severities returns the recognized severity levels, most severe first.
func Severities() []Severity {
	return []Severity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
		SeverityUnknown,
	}
}

// IsRecognized returns true if s is exactly one of the recognized literals.
// The comparison is case-sensitive and does not trim whitespace.
func (s Severity) IsRecognized() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityUnknown:
		return true
	}
	return false
}

// StringToSeverity returns the Severity for the given name literal.
func StringToSeverity(name string) (Severity, error) {
	s := Severity(name)
	if !s.IsRecognized() {
		return "", fmt.Errorf("unrecognized name literal: %s", name)
	}
	return s, nil
}
