package trivy

import (
	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
)

// Report is the document written by `trivy image --format json` since
// Trivy 0.20.0. Older releases write a bare array of ScanTarget.
type Report struct {
	SchemaVersion int          `json:"SchemaVersion"`
	ArtifactName  string       `json:"ArtifactName"`
	ArtifactType  string       `json:"ArtifactType"`
	Results       []ScanTarget `json:"Results"`
}

// ScanTarget is one scanned artifact, such as an OS package database or a
// language lock file found in a container image.
type ScanTarget struct {
	Target          string          `json:"Target"`
	Class           string          `json:"Class,omitempty"`
	Type            string          `json:"Type,omitempty"`
	Vulnerabilities []Vulnerability `json:"Vulnerabilities"`
}

// Vulnerability is a single finding reported for a ScanTarget. Only Severity
// is required, the remaining attributes are informational.
type Vulnerability struct {
	VulnerabilityID  string            `json:"VulnerabilityID,omitempty"`
	PkgName          string            `json:"PkgName,omitempty"`
	InstalledVersion string            `json:"InstalledVersion,omitempty"`
	FixedVersion     string            `json:"FixedVersion,omitempty"`
	Title            string            `json:"Title,omitempty"`
	Severity         v1alpha1.Severity `json:"Severity"`
	PrimaryURL       string            `json:"PrimaryURL,omitempty"`
}
