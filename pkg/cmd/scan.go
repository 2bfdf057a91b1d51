package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/thc-devops/vulnsummary/pkg/etc"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
)

const (
	reportFileFlagName       = "report-file"
	skipVersionCheckFlagName = "skip-version-check"
)

func NewScanCmd(executable string, config etc.Config, scanner trivy.Scanner, outWriter io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan IMAGE",
		Short: "Scan a container image with Trivy and summarize the vulnerabilities",
		Long: `Scan a container image with Trivy and summarize the vulnerabilities

IMAGE is a container image reference, e.g. docker.io/library/busybox:latest.
The Trivy executable must be installed on the local host.
`,
		Example: fmt.Sprintf(`  # Scan an image and print the summary
  %[1]s scan docker.io/library/busybox:latest

  # Scan an image and keep the raw Trivy report
  %[1]s scan --report-file busybox.json docker.io/library/busybox:latest`, executable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := getSummaryOpts(cmd)
			if err != nil {
				return err
			}
			reportFile, err := cmd.Flags().GetString(reportFileFlagName)
			if err != nil {
				return err
			}
			skipVersionCheck, err := cmd.Flags().GetBool(skipVersionCheckFlagName)
			if err != nil {
				return err
			}

			if !skipVersionCheck {
				v, err := scanner.Version(ctx)
				if err != nil {
					return err
				}
				if err := trivy.CheckVersion(v); err != nil {
					return err
				}
				klog.V(2).Infof("Using trivy version: %s", v)
			}

			reportPath, err := scanner.Scan(ctx, args[0], reportFile)
			if err != nil {
				return err
			}
			if reportFile == "" {
				defer func() {
					if err := os.Remove(reportPath); err != nil && !os.IsNotExist(err) {
						klog.Warningf("Removing report file: %v", err)
					}
				}()
			}

			targets, err := trivy.DecodeFile(reportPath)
			if err != nil {
				return err
			}
			return writeSummary(opts, targets, outWriter)
		},
	}
	registerSummaryFlags(cmd, config.Summary)
	cmd.Flags().String(reportFileFlagName, "",
		"Keep the Trivy JSON report at the specified path. The extension is replaced with .json")
	cmd.Flags().Bool(skipVersionCheckFlagName, config.ScannerTrivy.SkipVersionCheck,
		fmt.Sprintf("Do not check that Trivy is at least %s", trivy.MinVersion))

	return cmd
}
