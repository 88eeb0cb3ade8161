package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserAlreadyExists = errors.New("an account with this email already exists")
	ErrUserInactive      = errors.New("account is disabled")

	ErrInvalidInput     = errors.New("invalid input data")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("you must agree to the terms")
)

// Codes shared between services and the HTTP layer.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeWeakPassword          = "WEAK_PASSWORD"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeInvalidQueryParameter = "INVALID_QUERY_PARAMETER"
	CodeDuplicateApplication  = "DUPLICATE_APPLICATION"
	CodeAlreadySubscribed     = "ALREADY_SUBSCRIBED"
	CodeDuplicateSkill        = "DUPLICATE_SKILL"
	CodeAIUnavailable         = "AI_UNAVAILABLE"
	CodeAIBadResponse         = "AI_BAD_RESPONSE"
)

type AppError struct {
	Code    string
	Message string
	Err     error
	Details interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches client-safe detail to the error.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}
