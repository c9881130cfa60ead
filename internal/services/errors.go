package services

import (
	"errors"

	apperrors "github.com/studyfeed/content-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// ErrNotInitialized is returned when an operation runs before the
	// service selected its backing.
	ErrNotInitialized = errors.New("service not initialized")
)

// ===== SHARED ERROR TYPES =====

// Use the shared taxonomy from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type NotFoundError = apperrors.NotFoundError
type InfrastructureError = apperrors.InfrastructureError

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return apperrors.IsNotFound(err)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	return apperrors.IsValidation(err)
}

// IsInfrastructure checks if error represents a storage failure
func IsInfrastructure(err error) bool {
	return apperrors.IsInfrastructure(err)
}
