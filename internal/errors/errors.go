package errors

import "fmt"

// ErrorCode classifies a diary error.
type ErrorCode string

const (
	ErrValidation      ErrorCode = "VALIDATION"      // user-correctable, nothing persisted
	ErrDeserialization ErrorCode = "DESERIALIZATION" // corrupt stored value, recovered with an empty default
)

// DiaryError is a structured error with a code and message.
type DiaryError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *DiaryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates an error for rejected user input.
func NewValidation(msg string) *DiaryError {
	return &DiaryError{Code: ErrValidation, Message: msg}
}

// NewDeserialization creates an error for a stored value that is present but
// not parseable. Callers recover locally; this is never propagated as fatal.
func NewDeserialization(key string, cause error) *DiaryError {
	return &DiaryError{
		Code:    ErrDeserialization,
		Message: fmt.Sprintf("stored value for %q is not parseable: %v", key, cause),
	}
}

// Is checks if an error is a DiaryError with the given code.
func Is(err error, code ErrorCode) bool {
	if de, ok := err.(*DiaryError); ok {
		return de.Code == code
	}
	return false
}
