package utils

import (
	"github.com/google/uuid"
)

// GenerateValidationID generates a unique validation audit ID
func GenerateValidationID() string {
	return "VALIDATION-" + uuid.New().String()
}

// GenerateCorrelationID generates a correlation ID for a request
func GenerateCorrelationID() string {
	return uuid.New().String()
}
