package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ncobase/commerce/config"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand(inj Injectors) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetPath(configFile)

			app, cleanup, err := inj.App()
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			config.Watch(func(c *config.Config) {
				app.Logger.Info(context.Background(), "configuration file changed, restart to apply", "app", c.AppName)
			})

			return app.Server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configFile, "conf", "c", "", "config file path")
	return cmd
}
