// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept primitives and small input structs, never *http.Request,
// and return domain errors from apperror, never status codes. The handler
// translates both directions. That keeps every business rule callable (and
// testable) as a plain Go function.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/auth"
	"github.com/sakif/devconnector/internal/gravatar"
	"github.com/sakif/devconnector/internal/model"
	"github.com/sakif/devconnector/internal/repository"
)

// MinPasswordLength is the registration password rule.
const MinPasswordLength = 6

// emailRe accepts the practical shape of an email address. Full RFC 5322
// validation is famously unhelpful; anything that survives this check still
// has to receive mail to be useful.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration, login, and current-user lookup.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository → credential store
//   - tokens    *auth.TokenService        → issue/verify bearer tokens
//   - passwords *auth.PasswordService     → bcrypt hashing
//   - logger    *slog.Logger              → structured logging
//
// The two TTLs are injected from config. They differ: registration issues
// ~10h tokens, login ~100h. That asymmetry predates this implementation and
// is part of the observable contract, so it is configuration, not a
// constant to be "fixed" silently.
type AuthService struct {
	users       repository.UserRepository
	tokens      *auth.TokenService
	passwords   *auth.PasswordService
	logger      *slog.Logger
	registerTTL time.Duration
	loginTTL    time.Duration
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
	registerTTL, loginTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		passwords:   passwords,
		logger:      logger,
		registerTTL: registerTTL,
		loginTTL:    loginTTL,
	}
}

// Register creates a new account and returns a signed bearer token.
//
// Steps:
//  1. Validate name/email/password — all failures reported together
//  2. Reject an already-registered email with a conflict
//  3. Derive the gravatar URL from the email (deterministic)
//  4. bcrypt-hash the password (random per-user salt is internal to bcrypt)
//  5. Persist the user, then issue a token with the registration TTL
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	verr := &apperror.ValidationErrors{}
	if name == "" {
		verr.Add("name", "Name is required")
	}
	if !emailRe.MatchString(email) {
		verr.Add("email", "Please include a valid email")
	}
	if len(password) < MinPasswordLength {
		verr.Add("password", "Please enter a password with 6 or more characters")
	}
	if !verr.Empty() {
		return "", verr
	}

	// Friendly duplicate check. There is still a window where two
	// registrations of the same email race past this lookup — the UNIQUE
	// constraint in the repository closes it and reports the same conflict.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", apperror.Conflict("User already exist")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return "", fmt.Errorf("service/auth: checking email %s: %w", email, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    gravatar.URL(email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("service/auth: creating user (email=%s): %w", email, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Issue(user.ID, s.registerTTL)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	return token, nil
}

// Login verifies credentials and returns a signed bearer token.
//
// USER ENUMERATION:
// An unknown email and a wrong password return the byte-identical
// InvalidCredentials error. If the messages differed, an attacker could
// probe which emails have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)

	verr := &apperror.ValidationErrors{}
	if !emailRe.MatchString(email) {
		verr.Add("email", "Please enter a valid email")
	}
	if password == "" {
		verr.Add("password", "Password is required")
	}
	if !verr.Empty() {
		return "", verr
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("service/auth: looking up email %s: %w", email, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	token, err := s.tokens.Issue(user.ID, s.loginTTL)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	return token, nil
}

// GetCurrentUser loads the authenticated user's record. The password hash
// never leaves the model's json:"-" field, so the handler can return the
// user as-is.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
