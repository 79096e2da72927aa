// Package commands implements the commerce command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(inj Injectors) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "commerce",
		Short:         "Security core of the commerce platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(inj),
		NewRevokeCommand(inj),
		NewVersionCommand(),
	)

	return rootCmd
}
