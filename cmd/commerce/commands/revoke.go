package commands

import (
	"fmt"

	"github.com/ncobase/commerce/config"
	"github.com/spf13/cobra"
)

// NewRevokeCommand creates the revoke command
func NewRevokeCommand(inj Injectors) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "revoke <subjectId>",
		Short: "Revoke every live token of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetPath(configFile)

			tokens, cleanup, err := inj.Tokens()
			if err != nil {
				return fmt.Errorf("failed to initialize token service: %w", err)
			}
			defer cleanup()

			if err := tokens.RevokeAll(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked tokens of %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "conf", "c", "", "config file path")
	return cmd
}
