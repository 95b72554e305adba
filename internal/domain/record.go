package domain

import (
	"math"
	"strings"
)

type CreditAction string

const (
	CreditActionAdd    CreditAction = "add"
	CreditActionRemove CreditAction = "remove"
)

// SubmissionRecord is built fresh for every submit attempt and never stored.
type SubmissionRecord struct {
	Name                string       `json:"name"`
	PlanPattern         string       `json:"planPattern"`
	CurrentCredits      string       `json:"currentCredits"`
	SubscriptionEndDate string       `json:"subscriptionEndDate"`
	CreditAction        CreditAction `json:"creditAction"`
	CreditCount         string       `json:"creditCount"`
}

// FormField is one key/value pair of the outbound form body.
type FormField struct {
	Key   string
	Value string
}

// CollectFormData derives a SubmissionRecord from the current input values.
// Blank or non-numeric current credits count as 0 for the delta; Validate
// rejects the latter.
func CollectFormData(values FormValues) SubmissionRecord {
	planPattern := values.DurationSelection
	currentCredits := strings.TrimSpace(values.CurrentCredits)

	current, ok := parseFinite(currentCredits)
	if !ok {
		current = 0
	}

	delta := SumPlan(planPattern) - current
	action := CreditActionAdd
	if delta < 0 {
		action = CreditActionRemove
	}

	return SubmissionRecord{
		Name:                strings.TrimSpace(values.Name),
		PlanPattern:         planPattern,
		CurrentCredits:      currentCredits,
		SubscriptionEndDate: strings.TrimSpace(values.SubscriptionEndDate),
		CreditAction:        action,
		CreditCount:         FormatNumber(math.Abs(delta)),
	}
}

func (r SubmissionRecord) Plan() string {
	return r.PlanPattern
}

// Plane is the legacy duplicate of the plan pattern the receiving sheet
// expects; the leading quote keeps spreadsheets from reading it as a date.
func (r SubmissionRecord) Plane() string {
	return "'" + r.PlanPattern
}

// FormFields returns the wire fields in the order the endpoint receives them.
func (r SubmissionRecord) FormFields() []FormField {
	return []FormField{
		{Key: "name", Value: r.Name},
		{Key: "plan", Value: r.Plan()},
		{Key: "plane", Value: r.Plane()},
		{Key: "planPattern", Value: r.PlanPattern},
		{Key: "currentCredits", Value: r.CurrentCredits},
		{Key: "subscriptionEndDate", Value: r.SubscriptionEndDate},
		{Key: "creditAction", Value: string(r.CreditAction)},
		{Key: "creditCount", Value: r.CreditCount},
	}
}
