package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/credit-entry-cli/internal/adapters/surface/tomlform"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newFormCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Manage TOML form files",
	}

	cmd.AddCommand(newFormInitCmd(), newFormSetCmd(), newFormResetCmd(app))
	return cmd
}

func newFormInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Create an empty form file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, err := tomlform.Init(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", surface.Path())
			return err
		},
	}
}

func newFormSetCmd() *cobra.Command {
	var fields fieldFlags

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Write field values into a form file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, err := tomlform.Open(args[0])
			if err != nil {
				return err
			}
			if fields.apply(cmd, surface) == 0 {
				return errors.New("no field flags given")
			}
			if err := surface.Save(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", surface.Path())
			return err
		},
	}

	fields.register(cmd)
	return cmd
}

func newFormResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <file>",
		Short: "Clear every field of a form file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, err := tomlform.Open(args[0])
			if err != nil {
				return err
			}

			term := newTerminalFeedback(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
			if err := app.newController(ports.Compose(surface, term)).Reset(); err != nil {
				return fmt.Errorf("reset form: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", surface.Path())
			return err
		},
	}
}
