package utils

import (
	"errors"
	"fmt"
)

// Pagination bounds
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidInput marks errors caused by malformed caller input
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}

// ValidateValidationID validates validation ID format
func ValidateValidationID(validationID string) error {
	if validationID == "" {
		return invalidInput("validation ID cannot be empty")
	}
	if len(validationID) > 255 {
		return invalidInput("validation ID too long (max 255 characters)")
	}
	return nil
}

// ValidateOrgID validates organization ID
func ValidateOrgID(orgID string) error {
	if orgID == "" {
		return invalidInput("organization ID cannot be empty")
	}
	if len(orgID) > 255 {
		return invalidInput("organization ID too long (max 255 characters)")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ValidateOffset validates pagination offset
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
