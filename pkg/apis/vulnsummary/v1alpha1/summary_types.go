package v1alpha1

// SeveritySummary is a summary of vulnerability counts grouped by Severity.
//
// Field order is the serialization order of the summary document.
type SeveritySummary struct {
	// CriticalCount is the number of vulnerabilities with Critical Severity.
	CriticalCount int `json:"critical" yaml:"critical"`

	// HighCount is the number of vulnerabilities with High Severity.
	HighCount int `json:"high" yaml:"high"`

	// MediumCount is the number of vulnerabilities with Medium Severity.
	MediumCount int `json:"medium" yaml:"medium"`

	// LowCount is the number of vulnerabilities with Low Severity.
	LowCount int `json:"low" yaml:"low"`

	// UnknownCount is the number of vulnerabilities with unknown severity.
	UnknownCount int `json:"unknown" yaml:"unknown"`
}

// Count returns the counter for the given Severity, or zero if the Severity
// is not recognized.
func (s SeveritySummary) Count(severity Severity) int {
	switch severity {
	case SeverityCritical:
		return s.CriticalCount
	case SeverityHigh:
		return s.HighCount
	case SeverityMedium:
		return s.MediumCount
	case SeverityLow:
		return s.LowCount
	case SeverityUnknown:
		return s.UnknownCount
	}
	return 0
}

// Total returns the sum of all counters.
func (s SeveritySummary) Total() int {
	return s.CriticalCount + s.HighCount + s.MediumCount + s.LowCount + s.UnknownCount
}
