package cli

import (
	"fmt"

	"truthlens/internal/core/version"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			bi := version.Info()
			fmt.Fprintf(a.out, "truthlens %s (commit %s, built %s)\n", bi.Version, bi.Commit, bi.Date)
		},
	}
}
