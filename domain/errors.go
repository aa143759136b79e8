package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrProfileNotFound      = NewError(ErrCodeNotFound, "profile not found")
	ErrSessionNotFound      = NewError(ErrCodeNotFound, "study session not found")
	ErrAuthSessionNotFound  = NewError(ErrCodeNotFound, "auth session not found")
	ErrExamNotFound         = NewError(ErrCodeNotFound, "exam not found")
	ErrTimerNotFound        = NewError(ErrCodeNotFound, "no timer session for task")
	ErrSessionCompleted     = NewError(ErrCodeConflict, "completed session cannot be reopened")
	ErrUnauthorized         = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload       = NewError(ErrCodeInvalid, "invalid payload")
	ErrEmptyTopic           = NewError(ErrCodeInvalid, "topic must not be empty")
	ErrInvalidDuration      = NewError(ErrCodeInvalid, "duration must be a positive number of minutes")
	ErrAssistantUnavailable = NewError(ErrCodeUnavailable, "assistant temporarily unavailable")
	ErrMalformedAIResponse  = NewError(ErrCodeUnavailable, "assistant returned an unusable response")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
