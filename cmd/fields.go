package cmd

import (
	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/spf13/cobra"
)

// fieldFlags binds one flag per input field.
type fieldFlags struct {
	values domain.FormValues
}

var fieldFlagNames = map[domain.Field]string{
	domain.FieldName:                "name",
	domain.FieldCurrentCredits:      "current-credits",
	domain.FieldDurationSelection:   "plan",
	domain.FieldSubscriptionEndDate: "end-date",
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.values.Name, fieldFlagNames[domain.FieldName], "", "Customer name")
	flags.StringVar(&f.values.CurrentCredits, fieldFlagNames[domain.FieldCurrentCredits], "", "Credits currently held (whole number)")
	flags.StringVar(&f.values.DurationSelection, fieldFlagNames[domain.FieldDurationSelection], "", "Plan pattern, e.g. 4-2-2 (see `ce plans`)")
	flags.StringVar(&f.values.SubscriptionEndDate, fieldFlagNames[domain.FieldSubscriptionEndDate], "", "Subscription end date (YYYY-MM-DD)")
}

// apply copies every flag the user set onto surface, leaving the rest untouched.
func (f *fieldFlags) apply(cmd *cobra.Command, surface ports.InputSurface) int {
	applied := 0
	for _, field := range domain.InputFields() {
		if !cmd.Flags().Changed(fieldFlagNames[field]) {
			continue
		}
		surface.SetValue(field, f.values.Get(field))
		applied++
	}
	return applied
}
