package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/devconnector/internal/model"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// Each test gets its own database; Close is registered as cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, u *UserDB, name, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$fakehashfortestingonly",
		AvatarURL:    "https://www.gravatar.com/avatar/abc?s=200&r=pg&d=mm",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
