// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes and
// response bodies. Keeping the taxonomy in one small package means every
// layer agrees on what "not found" or "invalid credentials" means without
// importing net/http.
//
// SENTINEL ERRORS + errors.Is:
// Each category has a sentinel (ErrNotFound, ErrConflict, ...). An AppError
// wraps one sentinel and carries the human-readable message. Callers test
// the category with errors.Is(err, apperror.ErrNotFound), which walks the
// wrap chain via Unwrap().
package apperror

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError is a categorised application error.
type AppError struct {
	Err     error  // sentinel category (one of the vars above)
	Message string // human-readable message, safe to return to clients
	Field   string // optional: the request field that caused a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed returns a single-field validation error.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound returns a not-found error with the given client-facing message.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// Conflict returns a conflict error (e.g. duplicate registration).
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized returns an authentication failure. HTTP handlers map it to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// InvalidCredentials returns the login failure error.
//
// The message is deliberately the same whether the email is unknown or the
// password is wrong — a distinguishable message would let an attacker probe
// which emails are registered.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid Credentials",
	}
}

// ValidationErrors aggregates several field-level validation failures so a
// request with three bad fields reports all three at once, not one per
// round-trip.
//
// It unwraps to ErrValidation, so errors.Is(err, ErrValidation) works on the
// aggregate as well as on a single *AppError.
type ValidationErrors struct {
	Errors []*AppError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		msgs = append(msgs, fieldErr.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Add appends a field error to the aggregate.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, ValidationFailed(field, message))
}

// Empty reports whether no field errors were recorded. Validation helpers
// build a ValidationErrors, call Add for each failed rule, and return it
// only when !Empty().
func (e *ValidationErrors) Empty() bool {
	return len(e.Errors) == 0
}
