package ports

import "github.com/bnema/credit-entry-cli/internal/domain"

// InputSurface holds the raw field values a submission is built from.
type InputSurface interface {
	Value(field domain.Field) string
	SetValue(field domain.Field, value string)
	Reset() error
}

// Feedback reflects submission state back to the user.
type Feedback interface {
	SetBusy(busy bool)
	ShowError(message string)
	ShowToast(message string)
}

type FormSurface interface {
	InputSurface
	Feedback
}

// Compose joins an input surface with a feedback surface.
func Compose(input InputSurface, feedback Feedback) FormSurface {
	return composedSurface{InputSurface: input, Feedback: feedback}
}

type composedSurface struct {
	InputSurface
	Feedback
}

// ReadValues snapshots every input field of the surface.
func ReadValues(surface InputSurface) domain.FormValues {
	var values domain.FormValues
	for _, field := range domain.InputFields() {
		values.Set(field, surface.Value(field))
	}

	return values
}
