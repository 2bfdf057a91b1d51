package vulnerabilityreport_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
	"github.com/thc-devops/vulnsummary/pkg/vulnerabilityreport"
)

var unrecognized = []v1alpha1.Severity{"INFO", "NOTICE", "critical", "High", "", " LOW", "NONE"}

// randomTargets returns a deterministic, pseudo random report along with
// the number of vulnerabilities with a recognized severity.
func randomTargets(rnd *rand.Rand, withUnrecognized bool) ([]trivy.ScanTarget, int) {
	recognized := 0
	targets := make([]trivy.ScanTarget, rnd.Intn(8))
	for i := range targets {
		vulnerabilities := make([]trivy.Vulnerability, rnd.Intn(20))
		for j := range vulnerabilities {
			if withUnrecognized && rnd.Intn(3) == 0 {
				vulnerabilities[j].Severity = unrecognized[rnd.Intn(len(unrecognized))]
				continue
			}
			vulnerabilities[j].Severity = v1alpha1.Severities()[rnd.Intn(5)]
			recognized++
		}
		targets[i].Vulnerabilities = vulnerabilities
	}
	return targets, recognized
}

func deepCopy(targets []trivy.ScanTarget) []trivy.ScanTarget {
	copied := make([]trivy.ScanTarget, len(targets))
	for i, target := range targets {
		copied[i] = target
		copied[i].Vulnerabilities = make([]trivy.Vulnerability, len(target.Vulnerabilities))
		copy(copied[i].Vulnerabilities, target.Vulnerabilities)
	}
	return copied
}

func shuffle(rnd *rand.Rand, targets []trivy.ScanTarget) []trivy.ScanTarget {
	shuffled := make([]trivy.ScanTarget, len(targets))
	for i, target := range targets {
		vulnerabilities := append([]trivy.Vulnerability(nil), target.Vulnerabilities...)
		rnd.Shuffle(len(vulnerabilities), func(a, b int) {
			vulnerabilities[a], vulnerabilities[b] = vulnerabilities[b], vulnerabilities[a]
		})
		shuffled[i] = trivy.ScanTarget{Target: target.Target, Vulnerabilities: vulnerabilities}
	}
	rnd.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})
	return shuffled
}

var _ = Describe("Aggregate", func() {
	var rnd *rand.Rand

	BeforeEach(func() {
		rnd = rand.New(rand.NewSource(42))
	})

	Context("When every severity is recognized", func() {
		It("Should sum up to the number of vulnerabilities", func() {
			for i := 0; i < 200; i++ {
				targets, total := randomTargets(rnd, false)
				Expect(vulnerabilityreport.Aggregate(targets).Total()).To(Equal(total))
			}
		})
	})

	Context("When some severities are not recognized", func() {
		It("Should sum up to the number of recognized vulnerabilities only", func() {
			for i := 0; i < 200; i++ {
				targets, recognized := randomTargets(rnd, true)
				Expect(vulnerabilityreport.Aggregate(targets).Total()).To(Equal(recognized))
			}
		})

		It("Should not change counts compared to the report without them", func() {
			for i := 0; i < 200; i++ {
				targets, _ := randomTargets(rnd, true)
				filtered := make([]trivy.ScanTarget, len(targets))
				for k, target := range targets {
					for _, v := range target.Vulnerabilities {
						if v.Severity.IsRecognized() {
							filtered[k].Vulnerabilities = append(filtered[k].Vulnerabilities, v)
						}
					}
				}
				Expect(vulnerabilityreport.Aggregate(targets)).To(Equal(vulnerabilityreport.Aggregate(filtered)))
			}
		})
	})

	Context("When there are no targets", func() {
		It("Should return all zeros", func() {
			Expect(vulnerabilityreport.Aggregate([]trivy.ScanTarget{})).To(Equal(v1alpha1.SeveritySummary{}))
		})
	})

	Context("When targets or vulnerabilities are reordered", func() {
		It("Should return the same counts", func() {
			for i := 0; i < 200; i++ {
				targets, _ := randomTargets(rnd, true)
				Expect(vulnerabilityreport.Aggregate(shuffle(rnd, targets))).To(Equal(vulnerabilityreport.Aggregate(targets)))
			}
		})
	})

	Context("When the same report is aggregated twice", func() {
		It("Should return identical summaries and leave the input untouched", func() {
			targets, _ := randomTargets(rnd, true)
			snapshot := deepCopy(targets)

			first := vulnerabilityreport.Aggregate(targets)
			second := vulnerabilityreport.Aggregate(targets)
			Expect(second).To(Equal(first))
			Expect(targets).To(Equal(snapshot))
		})
	})

	Context("When strict policy is used", func() {
		It("Should agree with the default policy on recognized severities", func() {
			aggregator := vulnerabilityreport.NewAggregator(vulnerabilityreport.PolicyStrict)
			for i := 0; i < 100; i++ {
				targets, _ := randomTargets(rnd, false)
				summary, err := aggregator.Aggregate(targets)
				Expect(err).ToNot(HaveOccurred())
				Expect(summary).To(Equal(vulnerabilityreport.Aggregate(targets)))
			}
		})
	})
})
