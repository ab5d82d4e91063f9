package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// TokenHeader is the request header the client sends its bearer token in.
//
// This API uses a custom header rather than the standard
// "Authorization: Bearer <token>" form — the header name is part of the
// wire contract with existing clients, so it stays.
const TokenHeader = "x-auth-token"

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string
// "userID" can read or shadow your value. A package-private key type means
// only this package can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is the middleware that guards private routes.
//
// It reads the token from the x-auth-token header, verifies it, and stores
// the userID in the request context. A missing, invalid, or expired token
// terminates the request with 401 and a {"msg": ...} body — one verification
// attempt, no retries, no state.
//
// The two failure messages mirror the API's established wire contract:
// clients distinguish "you never sent a token" from "your token didn't
// verify" by message, both under status 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				writeUnauthorized(w, "No token generated , Authorization Failed")
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				writeUnauthorized(w, "Token Verification failed")
				return
			}

			// Store userID in context so handlers can read it
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context.
//
// On a RequireAuth-protected route this always returns (id, true); handlers
// still check ok as a guard against a route accidentally registered without
// the middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// writeUnauthorized sends the 401 response shape used by this middleware.
// It lives here (not in the handler package) so the auth package stays
// self-contained and importable without a dependency cycle.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
