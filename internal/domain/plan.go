package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const planSeparator = "-"

var allowedPlans = []string{"4-2-2", "4-4-2", "4-4-4-2-2-2", "4-2-2-2-2-2"}

// AllowedPlans returns the plan patterns a submission may carry.
func AllowedPlans() []string {
	return slices.Clone(allowedPlans)
}

func IsAllowedPlan(pattern string) bool {
	return slices.Contains(allowedPlans, pattern)
}

// ParsePlan splits a dash-separated plan pattern into its numeric components.
// Blank tokens count as 0. Tokens that are not finite numbers >= 0 are
// dropped; order and duplicates are kept.
func ParsePlan(pattern string) []float64 {
	tokens := strings.Split(pattern, planSeparator)
	parts := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		value, ok := parsePlanToken(token)
		if !ok {
			continue
		}
		parts = append(parts, value)
	}

	return parts
}

func SumPlan(pattern string) float64 {
	var total float64
	for _, part := range ParsePlan(pattern) {
		total += part
	}

	return total
}

func parsePlanToken(token string) (float64, bool) {
	if strings.TrimSpace(token) == "" {
		return 0, true
	}
	return parseNonNegative(token)
}

func parseNonNegative(raw string) (float64, bool) {
	value, ok := parseFinite(raw)
	if !ok || value < 0 {
		return 0, false
	}

	return value, true
}

func parseFinite(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// isWholeNumber reports whether raw is a whole number >= 0. Blank text counts as 0.
func isWholeNumber(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}

	value, ok := parseNonNegative(trimmed)
	if !ok {
		return false
	}

	return value == math.Trunc(value)
}

// FormatNumber renders value as the shortest decimal text, without exponent.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
