package cmd

import (
	"fmt"

	"github.com/bnema/credit-entry-cli/internal/adapters/render/feedback"
	"github.com/spf13/cobra"
)

func newPlansCmd() *cobra.Command {
	var current float64

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the allowed plans and their credit totals",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var currentPtr *float64
			if cmd.Flags().Changed("current-credits") {
				if current < 0 {
					return fmt.Errorf("current credits must be >= 0, got %v", current)
				}
				currentPtr = &current
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), feedback.RenderPlans(currentPtr))
			return err
		},
	}

	cmd.Flags().Float64Var(&current, "current-credits", 0, "Show the credit change each plan implies for this balance")
	return cmd
}
