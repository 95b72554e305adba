package tomlform

import (
	"fmt"

	"github.com/bnema/credit-entry-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int        `toml:"version"`
	Form    formSchema `toml:"form"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported form schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type formSchema struct {
	Name                string `toml:"name"`
	CurrentCredits      string `toml:"current_credits"`
	DurationSelection   string `toml:"duration_selection"`
	SubscriptionEndDate string `toml:"subscription_end_date"`
}

func toSchema(values domain.FormValues) formSchema {
	return formSchema{
		Name:                values.Name,
		CurrentCredits:      values.CurrentCredits,
		DurationSelection:   values.DurationSelection,
		SubscriptionEndDate: values.SubscriptionEndDate,
	}
}

func fromSchema(form formSchema) domain.FormValues {
	return domain.FormValues{
		Name:                form.Name,
		CurrentCredits:      form.CurrentCredits,
		DurationSelection:   form.DurationSelection,
		SubscriptionEndDate: form.SubscriptionEndDate,
	}
}
