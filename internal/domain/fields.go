package domain

type Field string

const (
	FieldName                Field = "name"
	FieldCurrentCredits      Field = "currentCredits"
	FieldDurationSelection   Field = "durationSelection"
	FieldSubscriptionEndDate Field = "subscriptionEndDate"
)

// InputFields lists the fields of the input surface in display order.
func InputFields() []Field {
	return []Field{FieldName, FieldCurrentCredits, FieldDurationSelection, FieldSubscriptionEndDate}
}

// FormValues is a raw snapshot of the input surface.
type FormValues struct {
	Name                string
	CurrentCredits      string
	DurationSelection   string
	SubscriptionEndDate string
}

func (v FormValues) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldCurrentCredits:
		return v.CurrentCredits
	case FieldDurationSelection:
		return v.DurationSelection
	case FieldSubscriptionEndDate:
		return v.SubscriptionEndDate
	default:
		return ""
	}
}

func (v *FormValues) Set(field Field, value string) {
	if v == nil {
		return
	}

	switch field {
	case FieldName:
		v.Name = value
	case FieldCurrentCredits:
		v.CurrentCredits = value
	case FieldDurationSelection:
		v.DurationSelection = value
	case FieldSubscriptionEndDate:
		v.SubscriptionEndDate = value
	}
}
