package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/auth"
)

func newTestAuthService(users *memUserRepo) *AuthService {
	return NewAuthService(
		users,
		newTestTokens(),
		auth.NewPasswordServiceForTest(bcrypt.MinCost),
		discardLogger(),
		10*time.Hour,
		100*time.Hour,
	)
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users)

	token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if token == "" {
		t.Fatal("Register() returned an empty token")
	}

	user, err := users.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in the clear, want a bcrypt hash")
	}
	if user.AvatarURL == "" {
		t.Error("Register() did not derive an avatar URL")
	}

	// The token must round-trip back to the new user's ID.
	userID, err := newTestTokens().Verify(token)
	if err != nil {
		t.Fatalf("Verify() on fresh registration token: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token subject = %q, want %q", userID, user.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "Imposter", "alice@example.com", "secret2")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate Register() error = %v, want ErrConflict", err)
	}
	if err.Error() != "User already exist" {
		t.Errorf("conflict message = %q, want %q", err.Error(), "User already exist")
	}
}

func TestRegister_AggregatesValidationErrors(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	// Everything wrong at once: the caller should hear about all three
	// fields in a single round-trip.
	_, err := svc.Register(context.Background(), "", "not-an-email", "shrt")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Register() error = %v, want ErrValidation", err)
	}

	var verr *apperror.ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("Register() error type = %T, want *ValidationErrors", err)
	}
	if len(verr.Errors) != 3 {
		t.Fatalf("len(verr.Errors) = %d, want 3: %v", len(verr.Errors), verr)
	}

	wantByField := map[string]string{
		"name":     "Name is required",
		"email":    "Please include a valid email",
		"password": "Please enter a password with 6 or more characters",
	}
	for _, fieldErr := range verr.Errors {
		want, ok := wantByField[fieldErr.Field]
		if !ok {
			t.Errorf("unexpected field %q in validation errors", fieldErr.Field)
			continue
		}
		if fieldErr.Message != want {
			t.Errorf("field %q message = %q, want %q", fieldErr.Field, fieldErr.Message, want)
		}
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin(t *testing.T) {
	users := newMemUserRepo()
	seeded := seedUser(users, "Alice", "alice@example.com", "secret1")
	svc := newTestAuthService(users)

	token, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	userID, err := newTestTokens().Verify(token)
	if err != nil {
		t.Fatalf("Verify() on login token: %v", err)
	}
	if userID != seeded.ID {
		t.Errorf("token subject = %q, want %q", userID, seeded.ID)
	}
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	users := newMemUserRepo()
	seedUser(users, "Alice", "alice@example.com", "secret1")
	svc := newTestAuthService(users)

	_, unknownEmailErr := svc.Login(context.Background(), "nobody@example.com", "secret1")
	_, wrongPasswordErr := svc.Login(context.Background(), "alice@example.com", "wrong")

	for name, err := range map[string]error{
		"unknown email":  unknownEmailErr,
		"wrong password": wrongPasswordErr,
	} {
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Fatalf("%s: error = %v, want ErrInvalidCredentials", name, err)
		}
	}

	// Byte-identical messages — a difference would let callers enumerate
	// which emails have accounts.
	if unknownEmailErr.Error() != wrongPasswordErr.Error() {
		t.Errorf("failure messages differ: %q vs %q",
			unknownEmailErr.Error(), wrongPasswordErr.Error())
	}
}

func TestLogin_ValidatesInput(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{"bad email", "not-an-email", "secret1", "Please enter a valid email"},
		{"empty password", "alice@example.com", "", "Password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Login() error = %v, want ErrValidation", err)
			}
			var verr *apperror.ValidationErrors
			if !errors.As(err, &verr) || len(verr.Errors) != 1 {
				t.Fatalf("want exactly one field error, got %v", err)
			}
			if verr.Errors[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Errors[0].Message, tt.wantMsg)
			}
		})
	}
}

// =========================================================================
// CURRENT USER TESTS
// =========================================================================

func TestGetCurrentUser(t *testing.T) {
	users := newMemUserRepo()
	seeded := seedUser(users, "Alice", "alice@example.com", "secret1")
	svc := newTestAuthService(users)

	user, err := svc.GetCurrentUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
}

func TestGetCurrentUser_Missing(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())

	if _, err := svc.GetCurrentUser(context.Background(), "no-such-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetCurrentUser() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetCurrentUser(context.Background(), ""); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("GetCurrentUser(\"\") error = %v, want ErrValidation", err)
	}
}
