package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// newTestPasswordService uses the minimum bcrypt cost so the suite doesn't
// spend ~250ms per hash.
func newTestPasswordService(t *testing.T) *PasswordService {
	t.Helper()
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	ps := newTestPasswordService(t)

	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret1" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := ps.Verify(hash, "secret1"); err != nil {
		t.Errorf("Verify() with the correct password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService(t)

	hash, _ := ps.Hash("secret1")
	if err := ps.Verify(hash, "secret2"); err == nil {
		t.Error("Verify() should fail for the wrong password")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	// bcrypt salts every hash, so two users with the same password must
	// get different stored values.
	ps := newTestPasswordService(t)

	hash1, _ := ps.Hash("secret1")
	hash2, _ := ps.Hash("secret1")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes — the salt isn't random")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := newTestPasswordService(t)

	if _, err := ps.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}
