package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypePayloadTooLarge  ErrorType = "payload_too_large"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	// ErrorTypeExternal covers failures of OAuth providers, Redis and the database
	ErrorTypeExternal ErrorType = "external"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
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

func newError(errorType ErrorType, message string, err error) error {
	return &AppError{Type: errorType, Message: message, Err: err}
}

func NotFoundf(format string, args ...interface{}) error {
	return newError(ErrorTypeNotFound, fmt.Sprintf(format, args...), nil)
}

func Validation(message string) error {
	return newError(ErrorTypeValidation, message, nil)
}

func Validationf(format string, args ...interface{}) error {
	return newError(ErrorTypeValidation, fmt.Sprintf(format, args...), nil)
}

// WrapValidation wraps a decoding or parsing failure as a client error
func WrapValidation(message string, err error) error {
	return newError(ErrorTypeValidation, message, err)
}

func Conflictf(format string, args ...interface{}) error {
	return newError(ErrorTypeConflict, fmt.Sprintf(format, args...), nil)
}

func WrapInternal(message string, err error) error {
	return newError(ErrorTypeInternal, message, err)
}

func Unauthorized(message string) error {
	return newError(ErrorTypeUnauthorized, message, nil)
}

func Forbidden(message string) error {
	return newError(ErrorTypeForbidden, message, nil)
}

func MethodNotAllowed(method string) error {
	return newError(ErrorTypeMethodNotAllowed, fmt.Sprintf("method %s not allowed", method), nil)
}

func PayloadTooLargef(format string, args ...interface{}) error {
	return newError(ErrorTypePayloadTooLarge, fmt.Sprintf(format, args...), nil)
}

func RateLimited(message string) error {
	return newError(ErrorTypeRateLimited, message, nil)
}

func External(message string) error {
	return newError(ErrorTypeExternal, message, nil)
}

func WrapExternal(message string, err error) error {
	return newError(ErrorTypeExternal, message, err)
}

// GetType returns the error type of an error; untyped errors count as internal
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err carries the given type anywhere in its chain
func Is(err error, errorType ErrorType) bool {
	return err != nil && GetType(err) == errorType
}
