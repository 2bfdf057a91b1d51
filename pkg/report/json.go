package report

import (
	"encoding/json"
	"io"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
)

type jsonWriter struct{}

func (w *jsonWriter) Write(summary v1alpha1.SeveritySummary, writer io.Writer) error {
	return json.NewEncoder(writer).Encode(summary)
}
