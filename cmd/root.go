package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "ce",
		Short:         "Credit entry CLI (ce): validate credit-plan entries and post them",
		Long:          "ce collects a credit-plan entry, derives the credit change against the chosen plan, validates it and posts it as a form to the configured endpoint.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(configPath, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ce/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSubmitCmd(app),
		newFormCmd(app),
		newPlansCmd(),
		newConfigCmd(app),
	)

	return rootCmd
}
