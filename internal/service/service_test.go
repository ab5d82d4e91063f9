package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/auth"
	"github.com/sakif/devconnector/internal/model"
)

// Shared in-memory fakes for the service tests. They implement the
// repository interfaces with maps, which keeps the tests free of any
// database and makes failure injection a one-field affair.

// discardLogger swallows log output so test runs stay quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestTokens returns a TokenService signed with a fixed test secret.
func newTestTokens() *auth.TokenService {
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		panic(err)
	}
	return tokens
}

// memUserRepo is a map-backed UserRepository.
type memUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID atomic.Int64

	// failDelete, when set, is returned from Delete to exercise the
	// partial-completion path of account deletion.
	failDelete error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperror.Conflict("User already exist")
		}
	}
	user.ID = fmt.Sprintf("user-%d", r.nextID.Add(1))
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("user not found")
	}
	delete(r.users, id)
	return nil
}

// memProfileRepo is a map-backed ProfileRepository keyed by user ID.
type memProfileRepo struct {
	profiles map[string]*model.Profile
	nextID   atomic.Int64

	saves int // counts Save calls, for the unmatched-removal no-op check
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (r *memProfileRepo) Save(_ context.Context, profile *model.Profile) error {
	r.saves++
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", r.nextID.Add(1))
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("There is no profile for this user")
	}
	clone := *profile
	// Reads carry the owner's display fields, like the real repository's
	// join against the users table.
	clone.Name = "Owner " + userID
	clone.AvatarURL = "https://www.gravatar.com/avatar/" + userID
	return &clone, nil
}

func (r *memProfileRepo) List(_ context.Context) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.profiles, userID)
	return nil
}

// seedUser registers a user directly in the repo with a real bcrypt hash
// (MinCost, so the tests stay fast).
func seedUser(r *memUserRepo, name, email, password string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &model.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := r.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}
