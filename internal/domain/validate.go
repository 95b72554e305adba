package domain

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MessageNameRequired        = "Name is required"
	MessageInvalidCurrent      = "Current credits must be a whole number ≥ 0"
	MessageInvalidPlan         = "Please select a valid plan"
	MessageInvalidEndDate      = "Invalid subscription end date"
	MessageInvalidCreditCount  = "Credit count must be a whole number ≥ 0"
	messageUnexpectedValidator = "Submission could not be validated"
)

var endDateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// Field order is rule order: the first failing field decides the message.
type recordRules struct {
	Name                string `validate:"required"`
	CurrentCredits      string `validate:"wholenumber"`
	PlanPattern         string `validate:"allowedplan"`
	SubscriptionEndDate string `validate:"omitempty,isodate"`
	CreditCount         string `validate:"wholenumber"`
}

var ruleMessages = map[string]string{
	"Name":                MessageNameRequired,
	"CurrentCredits":      MessageInvalidCurrent,
	"PlanPattern":         MessageInvalidPlan,
	"SubscriptionEndDate": MessageInvalidEndDate,
	"CreditCount":         MessageInvalidCreditCount,
}

var recordValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "wholenumber", func(fl validator.FieldLevel) bool {
		return isWholeNumber(fl.Field().String())
	})
	mustRegister(v, "allowedplan", func(fl validator.FieldLevel) bool {
		return IsAllowedPlan(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		return IsValidEndDate(fl.Field().String())
	})
	return v
})

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate returns "" when the record may be submitted, otherwise the message
// of the first rule that fails.
func Validate(record SubmissionRecord) string {
	err := recordValidator().Struct(recordRules{
		Name:                record.Name,
		CurrentCredits:      record.CurrentCredits,
		PlanPattern:         record.PlanPattern,
		SubscriptionEndDate: record.SubscriptionEndDate,
		CreditCount:         record.CreditCount,
	})
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return messageUnexpectedValidator
	}

	if message, ok := ruleMessages[fieldErrs[0].StructField()]; ok {
		return message
	}

	return messageUnexpectedValidator
}

// IsValidEndDate reports whether raw parses as a calendar date. Blank is valid.
func IsValidEndDate(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}

	for _, layout := range endDateLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return true
		}
	}

	return false
}
