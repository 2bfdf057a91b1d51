package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/thc-devops/vulnsummary/pkg/cmd"
	"github.com/thc-devops/vulnsummary/pkg/vulnsummary"
)

var (
	// These variables are populated by GoReleaser via ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"

	buildInfo = vulnsummary.BuildInfo{
		Version:    version,
		Commit:     commit,
		Date:       date,
		Executable: vulnsummary.ExecutableName,
	}
)

// main is the entrypoint of the vulnsummary CLI executable command.
func main() {
	klog.InitFlags(nil)

	err := cmd.Run(buildInfo, os.Args, os.Stdin, os.Stdout, os.Stderr)
	klog.Flush()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
