package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/thc-devops/vulnsummary/pkg/etc"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
)

func NewSummarizeCmd(executable string, config etc.Summary, outWriter io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"sum"},
		Use:     "summarize [REPORT]",
		Short:   "Count vulnerabilities of a Trivy JSON report by severity",
		Long: `Count vulnerabilities of a Trivy JSON report by severity

REPORT is the path to a report written by 'trivy image --format json'.
The report is read from the standard input if REPORT is omitted or is '-'.
`,
		Example: fmt.Sprintf(`  # Summarize a report file
  %[1]s summarize busybox.json

  # Summarize a report piped from Trivy in JSON output format
  trivy image --format json busybox:latest | %[1]s summarize -o json

  # Fail on severities Trivy does not normally emit
  %[1]s summarize --strict busybox.json`, executable),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getSummaryOpts(cmd)
			if err != nil {
				return err
			}
			targets, err := readTargets(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return writeSummary(opts, targets, outWriter)
		},
	}
	registerSummaryFlags(cmd, config)

	return cmd
}

func readTargets(inReader io.Reader, args []string) ([]trivy.ScanTarget, error) {
	if len(args) == 0 || args[0] == "-" {
		klog.V(3).Info("Reading report from standard input")
		report, err := trivy.DecodeReport(inReader)
		if err != nil {
			return nil, err
		}
		if report.ArtifactName != "" {
			klog.V(2).Infof("Summarizing report of %s: %s", report.ArtifactType, report.ArtifactName)
		}
		return report.Results, nil
	}
	klog.V(3).Infof("Reading report from file: %s", args[0])
	return trivy.DecodeFile(args[0])
}
