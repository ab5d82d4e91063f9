package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// =========================================================================
// SENTINEL MATCHING TESTS
// =========================================================================

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", ValidationFailed("email", "Please include a valid email"), ErrValidation},
		{"not found", NotFound("profile not found"), ErrNotFound},
		{"conflict", Conflict("User already exist"), ErrConflict},
		{"unauthorized", Unauthorized("Token Verification failed"), ErrUnauthorized},
		{"invalid credentials", InvalidCredentials(), ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf("...: %w", err).
	// The sentinel must still be visible through the extra layer.
	wrapped := fmt.Errorf("loading profile: %w", NotFound("There is no profile for this user"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should find ErrNotFound through a fmt.Errorf wrap")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract the *AppError through a wrap")
	}
	if appErr.Message != "There is no profile for this user" {
		t.Errorf("Message = %q, want the original message", appErr.Message)
	}
}

func TestUnwrap(t *testing.T) {
	err := Conflict("User already exist")
	if !errors.Is(err.Unwrap(), ErrConflict) {
		t.Error("Unwrap() should return the conflict sentinel")
	}
}

// =========================================================================
// MESSAGE TESTS
// =========================================================================

func TestInvalidCredentialsMessage(t *testing.T) {
	// The message must be the same every time, or a caller could tell
	// unknown-email apart from wrong-password.
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Message != b.Message {
		t.Errorf("InvalidCredentials messages differ: %q vs %q", a.Message, b.Message)
	}
	if a.Message != "Invalid Credentials" {
		t.Errorf("Message = %q, want %q", a.Message, "Invalid Credentials")
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("password", "Please enter a password with 6 or more characters")
	if err.Field != "password" {
		t.Errorf("Field = %q, want %q", err.Field, "password")
	}
	if err.Error() != "Please enter a password with 6 or more characters" {
		t.Errorf("Error() = %q, want the message", err.Error())
	}
}

// =========================================================================
// VALIDATION AGGREGATION TESTS
// =========================================================================

func TestValidationErrors_Empty(t *testing.T) {
	verr := &ValidationErrors{}
	if !verr.Empty() {
		t.Error("new ValidationErrors should be Empty")
	}

	verr.Add("name", "Name is required")
	if verr.Empty() {
		t.Error("ValidationErrors with one entry should not be Empty")
	}
}

func TestValidationErrors_CollectsAllFields(t *testing.T) {
	verr := &ValidationErrors{}
	verr.Add("name", "Name is required")
	verr.Add("email", "Please include a valid email")
	verr.Add("password", "Please enter a password with 6 or more characters")

	if len(verr.Errors) != 3 {
		t.Fatalf("len(Errors) = %d, want 3", len(verr.Errors))
	}
	if verr.Errors[1].Field != "email" {
		t.Errorf("Errors[1].Field = %q, want %q", verr.Errors[1].Field, "email")
	}
}

func TestValidationErrors_IsValidation(t *testing.T) {
	verr := &ValidationErrors{}
	verr.Add("status", "Status is required")

	if !errors.Is(verr, ErrValidation) {
		t.Error("errors.Is(ValidationErrors, ErrValidation) = false, want true")
	}
}
