package cmd

import (
	"fmt"

	"github.com/bnema/credit-entry-cli/internal/adapters/surface/memory"
	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file := app.cfg.File
			if file == "" {
				file = "(none)"
			}
			endpoint := app.cfg.Endpoint.URL
			if endpoint == "" {
				endpoint = "(not set)"
			}
			timeout := "transport default"
			if app.cfg.Endpoint.Timeout > 0 {
				timeout = app.cfg.Endpoint.Timeout.String()
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out,
				"config file:  %s\nendpoint:     %s\nmode:         %s\ntimeout:      %s\nlog level:    %s\nlog format:   %s\n",
				file, endpoint, app.cfg.Endpoint.Mode, timeout, app.cfg.Log.Level, app.cfg.Log.Format,
			); err != nil {
				return err
			}

			term := newTerminalFeedback(out, cmd.ErrOrStderr(), false)
			controller := app.newController(ports.Compose(memory.NewSurface(domain.FormValues{}), term))
			term.ShowNotice(controller.Notice())
			return nil
		},
	}
}
