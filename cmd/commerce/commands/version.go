package commands

import (
	"fmt"

	"github.com/ncobase/commerce/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Version:", info.Version)
			fmt.Fprintln(out, "Revision:", info.Revision)
			fmt.Fprintln(out, "Built At:", info.BuiltAt)
			fmt.Fprintln(out, "Go Version:", info.GoVersion)
		},
	}
}
