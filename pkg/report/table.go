package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thc-devops/vulnsummary/pkg/apis/vulnsummary/v1alpha1"
)

var severityColor = map[v1alpha1.Severity]func(a ...interface{}) string{
	v1alpha1.SeverityCritical: color.New(color.FgRed).SprintFunc(),
	v1alpha1.SeverityHigh:     color.New(color.FgHiRed).SprintFunc(),
	v1alpha1.SeverityMedium:   color.New(color.FgYellow).SprintFunc(),
	v1alpha1.SeverityLow:      color.New(color.FgBlue).SprintFunc(),
	v1alpha1.SeverityUnknown:  color.New(color.FgCyan).SprintFunc(),
}

// tableWriter writes a human readable table. Colors are disabled by the
// color package when stdout is not a terminal or NO_COLOR is set.
type tableWriter struct{}

func (w *tableWriter) Write(summary v1alpha1.SeveritySummary, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "%-8s  %s\n", "SEVERITY", "COUNT"); err != nil {
		return err
	}
	for _, severity := range v1alpha1.Severities() {
		label := severityColor[severity](fmt.Sprintf("%-8s", severity))
		if _, err := fmt.Fprintf(writer, "%s  %d\n", label, summary.Count(severity)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "%-8s  %d\n", "TOTAL", summary.Total())
	return err
}
