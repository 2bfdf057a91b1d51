package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thc-devops/vulnsummary/pkg/etc"
	"github.com/thc-devops/vulnsummary/pkg/trivy"
	"github.com/thc-devops/vulnsummary/pkg/vulnsummary"
)

func NewRootCmd(buildInfo vulnsummary.BuildInfo, config etc.Config, scanner trivy.Scanner, args []string, inReader io.Reader, outWriter io.Writer, errWriter io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           buildInfo.Executable,
		Short:         "Summarize container vulnerability scan results by severity",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(NewVersionCmd(buildInfo, outWriter))
	rootCmd.AddCommand(NewSummarizeCmd(buildInfo.Executable, config.Summary, outWriter))
	rootCmd.AddCommand(NewScanCmd(buildInfo.Executable, config, scanner, outWriter))

	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(inReader)
	rootCmd.SetOut(outWriter)
	rootCmd.SetErr(errWriter)

	return rootCmd
}

// Run is the entry point of the vulnsummary CLI. It runs the specified
// command based on the specified args.
func Run(buildInfo vulnsummary.BuildInfo, args []string, inReader io.Reader, outWriter io.Writer, errWriter io.Writer) error {
	initFlags()

	config, err := etc.GetConfig()
	if err != nil {
		return fmt.Errorf("getting config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := trivy.NewScanner(config.ScannerTrivy)
	return NewRootCmd(buildInfo, config, scanner, args, inReader, outWriter, errWriter).ExecuteContext(ctx)
}

func initFlags() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	// Hide all klog flags except for -v
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if f.Name != "v" {
			pflag.Lookup(f.Name).Hidden = true
		}
	})
}
