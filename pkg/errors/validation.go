package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node and period identifiers.
const maxIDLength = 256

// ValidateNodeID validates a node identifier read from a dataset.
//
// The rules are conservative:
//   - No empty or whitespace-only identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Uniqueness is checked by the chart, not here.
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidatePeriodID validates a projection period identifier such as "6m".
// Period ids are used in file names and cache keys, so they are limited to
// letters, digits, dash and underscore.
func ValidatePeriodID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "period id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidDataset, "period id too long (max 64 characters)")
	}
	for _, r := range id {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return New(ErrCodeInvalidDataset, "period id %q contains invalid character %q", id, r)
	}
	return nil
}
