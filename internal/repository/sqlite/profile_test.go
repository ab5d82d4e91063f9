package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/model"
)

// newTestProfile builds a minimal valid profile for the given user.
func newTestProfile(userID string) *model.Profile {
	return &model.Profile{
		UserID: userID,
		Status: "Developer",
		Skills: []string{"go", "sql"},
	}
}

// =========================================================================
// SAVE TESTS
// =========================================================================

func TestProfileSave_Insert(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	p := db.Profiles()

	profile := newTestProfile(user.ID)
	if err := p.Save(context.Background(), profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if profile.ID == "" {
		t.Error("Save() did not set profile.ID on insert")
	}
	if profile.CreatedAt.IsZero() {
		t.Error("Save() did not set profile.CreatedAt on insert")
	}
}

func TestProfileSave_UpdateKeepsIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	p := db.Profiles()

	first := newTestProfile(user.ID)
	if err := p.Save(context.Background(), first); err != nil {
		t.Fatalf("Save() insert error = %v", err)
	}

	second := newTestProfile(user.ID)
	second.Company = "Acme"
	if err := p.Save(context.Background(), second); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("update changed the profile ID: %q → %q", first.ID, second.ID)
	}
	// CreatedAt round-trips through the database on update, so allow for
	// sub-second precision loss while catching an actual reset.
	if drift := second.CreatedAt.Sub(first.CreatedAt); drift < -time.Second || drift > time.Second {
		t.Errorf("update changed CreatedAt: %v vs %v", first.CreatedAt, second.CreatedAt)
	}

	got, err := p.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if got.Company != "Acme" {
		t.Errorf("Company = %q, want %q", got.Company, "Acme")
	}
}

func TestProfileSave_DocumentColumnsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	p := db.Profiles()

	to := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	profile := newTestProfile(user.ID)
	profile.Social = model.SocialLinks{Twitter: "https://twitter.com/alice"}
	profile.Experience = []model.Experience{{
		ID:      "exp-1",
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		To:      &to,
	}}
	profile.Education = []model.Education{{
		ID:           "edu-1",
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
		Current:      false,
	}}

	if err := p.Save(context.Background(), profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := p.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}

	if len(got.Skills) != 2 || got.Skills[0] != "go" {
		t.Errorf("Skills = %v, want [go sql]", got.Skills)
	}
	if got.Social.Twitter != "https://twitter.com/alice" {
		t.Errorf("Social.Twitter = %q, want the stored link", got.Social.Twitter)
	}
	if len(got.Experience) != 1 || got.Experience[0].ID != "exp-1" {
		t.Fatalf("Experience = %+v, want the stored entry", got.Experience)
	}
	if got.Experience[0].To == nil || !got.Experience[0].To.Equal(to) {
		t.Errorf("Experience To = %v, want %v", got.Experience[0].To, to)
	}
	if len(got.Education) != 1 || got.Education[0].School != "State University" {
		t.Errorf("Education = %+v, want the stored entry", got.Education)
	}
}

// =========================================================================
// READ TESTS
// =========================================================================

func TestProfileGetByUserID_JoinsOwnerFields(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	p := db.Profiles()

	if err := p.Save(context.Background(), newTestProfile(user.ID)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := p.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("joined Name = %q, want %q", got.Name, "Alice")
	}
	if got.AvatarURL == "" {
		t.Error("joined AvatarURL is empty")
	}
}

func TestProfileGetByUserID_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "NoProfile", "none@example.com")

	_, err := db.Profiles().GetByUserID(context.Background(), user.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByUserID() error = %v, want ErrNotFound", err)
	}
}

func TestProfileList(t *testing.T) {
	db := newTestDB(t)
	p := db.Profiles()

	alice := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	bob := createTestUser(t, db.Users(), "Bob", "bob@example.com")
	for _, id := range []string{alice.ID, bob.ID} {
		if err := p.Save(context.Background(), newTestProfile(id)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	profiles, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2", len(profiles))
	}
	for _, profile := range profiles {
		if profile.Name == "" {
			t.Errorf("profile %s missing joined owner name", profile.ID)
		}
	}
}

func TestProfileList_Empty(t *testing.T) {
	db := newTestDB(t)

	profiles, err := db.Profiles().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if profiles == nil {
		t.Error("List() should return an empty slice, not nil (it encodes to [] not null)")
	}
	if len(profiles) != 0 {
		t.Errorf("len(profiles) = %d, want 0", len(profiles))
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestProfileDeleteByUserID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "Alice", "alice@example.com")
	p := db.Profiles()

	if err := p.Save(context.Background(), newTestProfile(user.ID)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := p.DeleteByUserID(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteByUserID() error = %v", err)
	}

	if _, err := p.GetByUserID(context.Background(), user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUserID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestProfileDeleteByUserID_AbsentIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "NoProfile", "none@example.com")

	// Account deletion runs the profile delete unconditionally, so a user
	// who never created a profile must not cause an error here.
	if err := db.Profiles().DeleteByUserID(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteByUserID() for a user without a profile: %v", err)
	}
}
