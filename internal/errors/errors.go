package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, preserving the code of an
// inner AppError so callers can still match on the failing stage.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Predefined error codes. Every failure in a report run maps to one of
// these; all are fatal, there is no retry or partial-result policy.
const (
	CodeIOError          = "IO_ERROR"          // source file unreadable
	CodeParseError       = "PARSE_ERROR"       // malformed date or missing required column
	CodeEmptySample      = "EMPTY_SAMPLE"      // statistical operation got zero valid observations
	CodeInsufficientData = "INSUFFICIENT_DATA" // regression given fewer than 2 valid pairs
	CodeDegenerateInput  = "DEGENERATE_INPUT"  // zero-variance predictor or pooled SD
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func IOError(message string, cause error) *AppError {
	return &AppError{Code: CodeIOError, Message: message, Cause: cause}
}

func ParseError(message string) *AppError {
	return New(CodeParseError, message)
}

func ParseErrorf(format string, args ...interface{}) *AppError {
	return New(CodeParseError, fmt.Sprintf(format, args...))
}

func EmptySample(message string) *AppError {
	return New(CodeEmptySample, message)
}

func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

func DegenerateInput(message string) *AppError {
	return New(CodeDegenerateInput, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
