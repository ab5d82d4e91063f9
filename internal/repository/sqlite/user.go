package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/model"
	"github.com/sakif/devconnector/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository on SQLite.
type UserDB struct {
	conn *sql.DB
}

// Create inserts a new user, generating the ID and timestamps.
//
// EMAIL UNIQUENESS:
// The UNIQUE constraint on email is the source of truth for "already
// registered". The service checks by lookup first (for the friendly error),
// but under concurrent registrations of the same email the constraint is
// what actually prevents the duplicate — we map its violation to the same
// conflict error.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("User already exist")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email.
// Returns apperror.ErrNotFound if no user is registered under that email.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.getBy(ctx, "email", email)
}

// getBy is the shared lookup for the two unique columns.
func (u *UserDB) getBy(ctx context.Context, column, value string) (*model.User, error) {
	var user model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
		 FROM users WHERE `+column+` = ?`,
		value,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("sqlite: getting user by %s: %w", column, err)
	}

	return &user, nil
}

// Delete removes a user row. Returns apperror.ErrNotFound if the ID matched
// nothing — the caller deleted an already-deleted account.
func (u *UserDB) Delete(ctx context.Context, id string) error {
	res, err := u.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete result for user %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("user not found")
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
//
// modernc.org/sqlite doesn't export a typed constraint error we can
// errors.As against, so we match the stable "UNIQUE constraint failed"
// message SQLite itself produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
