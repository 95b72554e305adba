package application

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
)

const (
	ToastSavedOpaque = "Saved (no-cors)"
	ToastSaved       = "Saved successfully"

	MessageEndpointNotConfigured = "Web App URL not configured. Please set endpoint.url in the config file or CE_ENDPOINT_URL"
	MessageSaveFailed            = "Save failed"
	MessageInvalidJSON           = "Invalid JSON response"
	networkErrorPrefix           = "Network error: "

	// ConfigNotice is shown for as long as no endpoint is configured.
	ConfigNotice = "No endpoint URL configured: submissions are disabled. Set endpoint.url in the config file or CE_ENDPOINT_URL."

	maxDetailRunes = 120
)

type OutcomeKind string

const (
	OutcomeSaved        OutcomeKind = "saved"
	OutcomeInvalid      OutcomeKind = "invalid"
	OutcomeConfigError  OutcomeKind = "config_error"
	OutcomeRejected     OutcomeKind = "rejected"
	OutcomeNetworkError OutcomeKind = "network_error"
)

// Outcome is the result of one submit attempt.
type Outcome struct {
	AttemptID  string                  `json:"attemptId"`
	Kind       OutcomeKind             `json:"kind"`
	Message    string                  `json:"message"`
	Record     domain.SubmissionRecord `json:"record"`
	Opaque     bool                    `json:"opaque,omitempty"`
	StatusCode int                     `json:"statusCode,omitempty"`
}

func (o Outcome) Saved() bool {
	return o.Kind == OutcomeSaved
}

// interpretResponse applies the response rules in priority order: opaque,
// HTTP status, JSON ok flag, then error text.
func interpretResponse(resp ports.SubmitResponse) (OutcomeKind, string) {
	if resp.Opaque {
		return OutcomeSaved, ToastSavedOpaque
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := truncateRunes(string(resp.Body), maxDetailRunes)
		return OutcomeRejected, strings.TrimSpace(fmt.Sprintf("Save failed (HTTP %d). %s", resp.StatusCode, detail))
	}

	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return OutcomeRejected, MessageInvalidJSON
	}

	object, _ := payload.(map[string]any)
	if truthy(object["ok"]) {
		return OutcomeSaved, ToastSaved
	}

	if errValue := object["error"]; truthy(errValue) {
		if text, ok := errValue.(string); ok {
			return OutcomeRejected, text
		}
		return OutcomeRejected, fmt.Sprint(errValue)
	}

	return OutcomeRejected, MessageSaveFailed
}

// truthy follows the loose truthiness the endpoint's JSON flags are written for.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}

func networkErrorMessage(err error) string {
	return networkErrorPrefix + err.Error()
}
