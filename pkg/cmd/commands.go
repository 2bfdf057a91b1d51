package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/thc-devops/vulnsummary/pkg/etc"
	"github.com/thc-devops/vulnsummary/pkg/report"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
	"github.com/thc-devops/vulnsummary/pkg/vulnerabilityreport"
)

const (
	outputFlagName     = "output"
	strictFlagName     = "strict"
	outputFileFlagName = "output-file"
)

func registerSummaryFlags(cmd *cobra.Command, config etc.Summary) {
	cmd.Flags().StringP(outputFlagName, "o", config.OutputFormat,
		"Output format. One of yaml|json|table")
	cmd.Flags().Bool(strictFlagName, config.Strict,
		"Fail when a vulnerability has a severity other than CRITICAL, HIGH, MEDIUM, LOW or UNKNOWN."+
			" By default such vulnerabilities are left out of all counts.")
	cmd.Flags().String(outputFileFlagName, "",
		"Write the summary to the specified file instead of the standard output")
}

type summaryOpts struct {
	writer     report.Writer
	policy     vulnerabilityreport.Policy
	outputFile string
}

func getSummaryOpts(cmd *cobra.Command) (opts summaryOpts, err error) {
	format, err := cmd.Flags().GetString(outputFlagName)
	if err != nil {
		return
	}
	opts.writer, err = report.NewWriter(report.Format(format))
	if err != nil {
		return
	}
	strict, err := cmd.Flags().GetBool(strictFlagName)
	if err != nil {
		return
	}
	opts.policy = vulnerabilityreport.PolicyDrop
	if strict {
		opts.policy = vulnerabilityreport.PolicyStrict
	}
	opts.outputFile, err = cmd.Flags().GetString(outputFileFlagName)
	return
}

func writeSummary(opts summaryOpts, targets []trivy.ScanTarget, outWriter io.Writer) error {
	summary, err := vulnerabilityreport.NewAggregator(opts.policy).Aggregate(targets)
	if err != nil {
		return err
	}
	klog.V(3).Infof("Aggregated %d targets: %+v", len(targets), summary)

	if opts.outputFile == "" {
		return opts.writer.Write(summary, outWriter)
	}
	f, err := os.Create(opts.outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := opts.writer.Write(summary, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}
