package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// AppError is a domain error the HTTP layer knows how to translate.
// The Message is client-facing; the wrapped Err is the sentinel used
// for errors.Is checks.
type AppError struct {
	Err     error  // sentinel (ErrNotFound, ErrValidation)
	Message string // Human-readable, safe to return to the client
	Field   string // Optional: the payload field causing a validation failure
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a resource doesn't exist — or doesn't exist for the
// requesting user, which must look identical. The message is exactly what the
// client sees: "Project not found", "Task not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationFailed reports a business-rule violation the payload validation
// couldn't catch on its own (e.g. a projectId that doesn't reference one of
// the caller's projects). The HTTP layer folds it into the same
// {message, errors} shape as payload validation failures.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
