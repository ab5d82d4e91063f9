// Package auth provides token issuance/verification, the auth middleware,
// and password hashing.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. POST /api/users registers an account (or POST /api/auth logs in)
// 2. The server issues a signed JWT carrying the user's internal ID
// 3. The client sends that token back on every private request in the
//    x-auth-token header
// 4. Middleware verifies the signature and expiry, and puts the userID in
//    the request context for handlers to read
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't need to store
// session data. All the information needed (userID, expiry) is inside the
// signed token, and the signature ensures nobody can tamper with it without
// the secret key. There is no revocation list: a token stays valid until it
// expires.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure categories. The middleware treats both the same way
// (401), but tests and logs care about the difference.
var (
	// ErrTokenExpired means the token was validly signed but its expiry
	// has elapsed.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid means the token could not be cryptographically
	// validated (bad signature, malformed, wrong algorithm).
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// TokenService issues and verifies signed bearer tokens.
//
// It holds the HMAC secret used to sign and verify. The secret is injected
// at construction from configuration — never read from a global — so tests
// can run with their own secret and production rotates by restarting with a
// new one.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims which includes
// standard fields like Issuer, Subject, ExpiresAt, IssuedAt.
//
// We use "sub" (Subject) to store the internal user ID — the standard JWT
// claim for identifying who the token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a token for the given userID, expiring after ttl.
//
// The lifetime is a parameter, not a constant, because the two issuance
// paths use different windows: registration issues ~10h tokens and login
// ~100h ones. Both values live in configuration.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. Fine for a single-server deployment; multi-server key rotation
// would want RS256.
func (s *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "devconnector",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string and returns the userID it was
// issued for.
//
// Failure modes:
//   - ErrTokenExpired if the signature is fine but the expiry has lapsed
//   - ErrTokenInvalid for everything else (tampered signature, malformed
//     token, unexpected signing algorithm)
//
// ALGORITHM PINNING:
// The keyfunc checks the token's signing method is HMAC before returning
// the secret. Without this check, an attacker could craft a token with
// alg=none (or an RSA alg with the public key as "secret") and bypass
// verification entirely — a classic JWT library pitfall.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		// jwt/v5 wraps category sentinels into its parse errors, so we can
		// tell expiry apart from tampering with errors.Is.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return "", ErrTokenInvalid
	}

	return c.Subject, nil
}
