package vulnerabilityreport

import (
	"errors"
	"fmt"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
)

// ErrUnrecognizedSeverity is returned by an Aggregator with PolicyStrict
// for a vulnerability whose severity is not a recognized literal.
var ErrUnrecognizedSeverity = errors.New("unrecognized severity")

// Policy decides what happens to vulnerabilities with unrecognized severity.
type Policy string

const (
	// PolicyDrop counts such vulnerabilities in no bucket, including
	// the unknown bucket.
	PolicyDrop Policy = "drop"
	// PolicyStrict aborts the aggregation with ErrUnrecognizedSeverity.
	PolicyStrict Policy = "strict"
)

// Aggregator is the interface that wraps the Aggregate method.
//
// Aggregate folds vulnerabilities of the given targets into one summary.
// Implementations are stateless and safe for concurrent use.
type Aggregator interface {
	Aggregate(targets []trivy.ScanTarget) (v1alpha1.SeveritySummary, error)
}

// NewAggregator constructs a new Aggregator with the given Policy. Any value
// other than PolicyStrict behaves as PolicyDrop.
func NewAggregator(policy Policy) Aggregator {
	return &aggregator{
		policy: policy,
	}
}

type aggregator struct {
	policy Policy
}

func (a *aggregator) Aggregate(targets []trivy.ScanTarget) (v1alpha1.SeveritySummary, error) {
	if a.policy == PolicyStrict {
		if err := checkSeverities(targets); err != nil {
			return v1alpha1.SeveritySummary{}, err
		}
	}
	return Aggregate(targets), nil
}

// Aggregate counts vulnerabilities of the given targets by severity.
//
// Severity literals are matched exactly and case-sensitively. Vulnerabilities
// with any other severity, for example "critical" or "NOTICE", are dropped:
// they don't increment any counter, not even UnknownCount.
func Aggregate(targets []trivy.ScanTarget) (vs v1alpha1.SeveritySummary) {
	for _, target := range targets {
		for _, v := range target.Vulnerabilities {
			switch v.Severity {
			case v1alpha1.SeverityCritical:
				vs.CriticalCount++
			case v1alpha1.SeverityHigh:
				vs.HighCount++
			case v1alpha1.SeverityMedium:
				vs.MediumCount++
			case v1alpha1.SeverityLow:
				vs.LowCount++
			case v1alpha1.SeverityUnknown:
				vs.UnknownCount++
			}
		}
	}
	return
}

func checkSeverities(targets []trivy.ScanTarget) error {
	for i, target := range targets {
		for j, v := range target.Vulnerabilities {
			if !v.Severity.IsRecognized() {
				return fmt.Errorf("target %d: vulnerability %d: %w: %q", i, j, ErrUnrecognizedSeverity, v.Severity)
			}
		}
	}
	return nil
}
