// Package repository defines the storage interfaces the service layer
// depends on. Services receive these interfaces, never a concrete *sqlite.DB
// — tests inject in-memory mocks and the database could change without
// touching business logic.
package repository

import (
	"context"

	"github.com/sakif/devconnector/internal/model"
)

// UserRepository stores credential records.
type UserRepository interface {
	// Create inserts a new user, filling in ID and timestamps.
	// Returns apperror.ErrConflict if the email is already registered.
	Create(ctx context.Context, user *model.User) error
	// GetByID returns apperror.ErrNotFound if no user has that ID.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail returns apperror.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Delete removes a user. Returns apperror.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores profile records.
//
// Sub-collection edits (experience/education) are expressed as a fetch via
// GetByUserID, an in-memory mutation, and a Save — the repository persists
// whole profiles, mirroring a document store's per-document write.
type ProfileRepository interface {
	// Save inserts the profile if none exists for profile.UserID, otherwise
	// replaces the stored row. ID and timestamps are filled in on insert.
	Save(ctx context.Context, profile *model.Profile) error
	// GetByUserID returns apperror.ErrNotFound if the user has no profile.
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	// List returns all profiles, each joined with the owner's display fields.
	List(ctx context.Context) ([]model.Profile, error)
	// DeleteByUserID removes the user's profile. Deleting an absent profile
	// is not an error — account deletion must work for users who never
	// created one.
	DeleteByUserID(ctx context.Context, userID string) error
}
