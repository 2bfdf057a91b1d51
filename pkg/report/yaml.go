package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
)

// yamlWriter writes the five counters as a flat YAML mapping, one key per
// line in severity order.
type yamlWriter struct{}

func (w *yamlWriter) Write(summary v1alpha1.SeveritySummary, writer io.Writer) error {
	out, err := yaml.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = writer.Write(out)
	return err
}
