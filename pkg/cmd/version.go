package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thc-devops/vulnsummary/pkg/vulnsummary"
)

func NewVersionCmd(buildInfo vulnsummary.BuildInfo, outWriter io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(outWriter, "vulnsummary Version: %+v\n", struct {
				Version string
				Commit  string
				Date    string
			}{Version: buildInfo.Version, Commit: buildInfo.Commit, Date: buildInfo.Date})
			return nil
		},
	}
	return cmd
}
