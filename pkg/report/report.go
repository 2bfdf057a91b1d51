package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
)

// Format is the name of a summary output format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// Formats returns all supported output formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatTable}
}

// Writer is the interface that wraps the Write method.
//
// Write serializes the given summary to the writer.
type Writer interface {
	Write(summary v1alpha1.SeveritySummary, writer io.Writer) error
}

// NewWriter returns the Writer for the given Format.
func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatYAML:
		return &yamlWriter{}, nil
	case FormatJSON:
		return &jsonWriter{}, nil
	case FormatTable:
		return &tableWriter{}, nil
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return nil, fmt.Errorf("unrecognized output format: %q: must be one of %s", format, strings.Join(names, "|"))
}
