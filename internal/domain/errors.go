package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Input errors
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
	ErrPolicyRejection ErrorCode = "POLICY_REJECTION"

	// Generation pipeline errors
	ErrRateLimited       ErrorCode = "RATE_LIMITED"
	ErrQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"
	ErrGenerationFailed  ErrorCode = "GENERATION_FAILED"
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrSchemaViolation   ErrorCode = "SCHEMA_VIOLATION"

	// Storage errors
	ErrPersistence ErrorCode = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

func NewPolicyRejectionError() *DomainError {
	return NewError(ErrPolicyRejection, "This topic is not allowed", nil)
}

func NewRateLimitedError(err error) *DomainError {
	return NewError(ErrRateLimited, "Rate limit exceeded. Please try again later.", err)
}

func NewQuotaExceededError(err error) *DomainError {
	return NewError(ErrQuotaExceeded, "AI usage limit reached. Please try again later.", err)
}

func NewGenerationFailedError(err error) *DomainError {
	return NewError(ErrGenerationFailed, "Failed to generate quiz", err)
}

func NewMalformedResponseError(err error) *DomainError {
	return NewError(ErrMalformedResponse, "Generated quiz was not valid JSON", err)
}

// NewSchemaViolationError names the first violation found in the generated payload.
func NewSchemaViolationError(violation string) *DomainError {
	return NewError(ErrSchemaViolation, fmt.Sprintf("Generated quiz failed validation: %s", violation), nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrNotFound, "Quiz not found", fmt.Errorf("quiz %s does not exist", quizID))
}

func NewPersistenceError(message string, err error) *DomainError {
	return NewError(ErrPersistence, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// CodeOf returns the code of the first DomainError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
