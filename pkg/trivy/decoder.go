package trivy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
	"github.com/thc-devops/vulnsummary/pkg/ext"
)

var (
	// ErrMissingVulnerabilities is returned when a target record of a legacy
	// report has no Vulnerabilities field.
	ErrMissingVulnerabilities = errors.New("missing Vulnerabilities field")
	// ErrMissingSeverity is returned when a vulnerability record has no
	// Severity field or the field is null.
	ErrMissingSeverity = errors.New("missing Severity field")
	// ErrUnrecognizedDocument is returned when the input is neither an array
	// of targets nor a Trivy report object.
	ErrUnrecognizedDocument = errors.New("unrecognized report document")
)

var jsonNull = []byte("null")

// Decode reads a Trivy JSON report and returns its scan targets in document
// order.
//
// Both the legacy layout (an array of targets) and the current layout (an
// object with a Results array) are accepted. A null document yields no
// targets. Structural problems are reported as errors, so that callers never
// aggregate a partially understood report.
func Decode(reader io.Reader) ([]ScanTarget, error) {
	report, err := DecodeReport(reader)
	if err != nil {
		return nil, err
	}
	return report.Results, nil
}

// DecodeReport is like Decode but also returns the artifact metadata of the
// current layout. Legacy documents carry no metadata.
func DecodeReport(reader io.Reader) (Report, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return Report{Results: []ScanTarget{}}, nil
	}
	data, err = ext.TrimJSONPreamble(data)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}

	switch data[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return Report{}, fmt.Errorf("decoding report: %w", err)
		}
		targets, err := decodeTargets(records, true)
		if err != nil {
			return Report{}, err
		}
		return Report{Results: targets}, nil
	default:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return Report{}, fmt.Errorf("decoding report: %w", err)
		}
		return decodeReport(fields)
	}
}

// DecodeFile decodes the Trivy JSON report stored at the given path.
func DecodeFile(path string) ([]ScanTarget, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	targets, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return targets, nil
}

func decodeReport(fields map[string]json.RawMessage) (Report, error) {
	results, hasResults := fields["Results"]
	rawSchemaVersion, hasSchemaVersion := fields["SchemaVersion"]
	if !hasResults && !hasSchemaVersion {
		return Report{}, fmt.Errorf("%w: missing Results field", ErrUnrecognizedDocument)
	}
	report := Report{
		ArtifactName: optionalString(fields, "ArtifactName"),
		ArtifactType: optionalString(fields, "ArtifactType"),
		Results:      []ScanTarget{},
	}
	if hasSchemaVersion {
		_ = json.Unmarshal(rawSchemaVersion, &report.SchemaVersion)
	}
	if !hasResults {
		// Trivy omits Results when nothing was detected.
		return report, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(results, &records); err != nil {
		return Report{}, fmt.Errorf("decoding Results: %w", err)
	}
	// Schema version 2 omits Vulnerabilities for clean targets.
	targets, err := decodeTargets(records, false)
	if err != nil {
		return Report{}, err
	}
	report.Results = targets
	return report, nil
}

func decodeTargets(records []json.RawMessage, requireVulnerabilities bool) ([]ScanTarget, error) {
	targets := make([]ScanTarget, 0, len(records))
	for i, record := range records {
		target, err := decodeTarget(record, requireVulnerabilities)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func decodeTarget(record json.RawMessage, requireVulnerabilities bool) (ScanTarget, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return ScanTarget{}, err
	}
	if fields == nil {
		return ScanTarget{}, errors.New("record is null")
	}

	target := ScanTarget{
		Target: optionalString(fields, "Target"),
		Class:  optionalString(fields, "Class"),
		Type:   optionalString(fields, "Type"),
	}

	raw, ok := fields["Vulnerabilities"]
	if !ok {
		if requireVulnerabilities {
			return ScanTarget{}, ErrMissingVulnerabilities
		}
		return target, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return ScanTarget{}, fmt.Errorf("decoding Vulnerabilities: %w", err)
	}
	target.Vulnerabilities = make([]Vulnerability, 0, len(items))
	for j, item := range items {
		vulnerability, err := decodeVulnerability(item)
		if err != nil {
			return ScanTarget{}, fmt.Errorf("vulnerability %d: %w", j, err)
		}
		target.Vulnerabilities = append(target.Vulnerabilities, vulnerability)
	}
	return target, nil
}

func decodeVulnerability(item json.RawMessage) (Vulnerability, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return Vulnerability{}, err
	}
	if fields == nil {
		return Vulnerability{}, errors.New("record is null")
	}
	raw, ok := fields["Severity"]
	if !ok {
		return Vulnerability{}, ErrMissingSeverity
	}
	var severity *string
	if err := json.Unmarshal(raw, &severity); err != nil {
		return Vulnerability{}, fmt.Errorf("decoding Severity: %w", err)
	}
	if severity == nil {
		return Vulnerability{}, ErrMissingSeverity
	}
	return Vulnerability{
		VulnerabilityID:  optionalString(fields, "VulnerabilityID"),
		PkgName:          optionalString(fields, "PkgName"),
		InstalledVersion: optionalString(fields, "InstalledVersion"),
		FixedVersion:     optionalString(fields, "FixedVersion"),
		Title:            optionalString(fields, "Title"),
		Severity:         v1alpha1.Severity(*severity),
		PrimaryURL:       optionalString(fields, "PrimaryURL"),
	}, nil
}

// optionalString returns the string value of the given key, or an empty
// string if the key is absent or holds anything but a JSON string.
func optionalString(fields map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}
