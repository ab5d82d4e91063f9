// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// Identity is email/password: the email is UNIQUE in the database and the
// password is stored only as a bcrypt hash. We generate our own internal
// string ID (xid) so primary keys are opaque and sortable by creation time.
//
// WHY IS PasswordHash TAGGED json:"-"?
// The hash must never appear in an API response. Tagging it "-" means
// encoding/json skips the field entirely, so even a careless
// writeJSON(w, 200, user) cannot leak it.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	AvatarURL    string    `json:"avatar"    db:"avatar_url"` // Gravatar URL derived from the email
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
