package vulnsummary

const (
	// ExecutableName the name of the CLI executable.
	ExecutableName = "vulnsummary"

	// ReportFilePrefix the prefix of Trivy report files written to the
	// temporary directory when no report file is requested.
	ReportFilePrefix = "trivy-"
)
