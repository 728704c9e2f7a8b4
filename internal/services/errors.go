package services

import (
	"errors"

	apperrors "github.com/studyboss/study-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")
	ErrInternalError    = errors.New("internal server error")

	// User specific errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPlanType    = errors.New("invalid plan type")

	// Summary specific errors
	ErrSummaryNotFound = errors.New("summary not found")
	ErrSummaryExists   = errors.New("a summary already exists for this week and day")

	// Quiz specific errors
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizExists          = errors.New("a quiz already exists for this week and day")
	ErrQuizInvalidSchedule = errors.New("weekly quizzes must have no day and daily quizzes must have one")

	// Task specific errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskAccessDenied = errors.New("access denied to task")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSummaryNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrTaskNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials)
}

// IsForbidden checks if error represents a "forbidden" condition
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrTaskAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrQuizInvalidSchedule) ||
		errors.Is(err, ErrInvalidPlanType) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrSummaryExists) ||
		errors.Is(err, ErrQuizExists)
}
