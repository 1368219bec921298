package api

import (
	"fmt"
	"time"
)

// ============================================================================
// ERROR TAXONOMY
// ============================================================================

type ErrorCode int

const (
	// Client errors (1000-1999)
	ErrCodeInvalidJSON ErrorCode = iota + 1000
	ErrCodeInvalidHours
	ErrCodeNotAllowed

	// Server errors (2000-2999)
	ErrCodeProviderFailure ErrorCode = iota + 2000
)

// AppError carries the sanitized client-facing message plus the wrapped
// cause. The cause goes to the server log only, never into a response body.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Err        error
	Timestamp  int64
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, msg string, err error, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    msg,
		Err:        err,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now().UnixNano(),
	}
}

// Error constructors

func ErrInvalidJSON(err error) *AppError {
	return NewError(ErrCodeInvalidJSON, "invalid json", err, 400)
}

func ErrInvalidHours(msg string) *AppError {
	return NewError(ErrCodeInvalidHours, msg, nil, 400)
}

func ErrNotAllowed(id string) *AppError {
	return NewError(ErrCodeNotAllowed, fmt.Sprintf("Instance %s is not in the allowed list", id), nil, 403)
}

func ErrStartFailed(err error) *AppError {
	return NewError(ErrCodeProviderFailure, "Failed to start instance. Check server logs.", err, 500)
}

func ErrStopFailed(err error) *AppError {
	return NewError(ErrCodeProviderFailure, "Failed to stop instance. Check server logs.", err, 500)
}
