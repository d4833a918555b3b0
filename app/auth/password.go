package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashing indicates the one-way transform itself failed. This is a broken
// deployment, not a user-facing condition.
var ErrHashing = errors.New("auth: hashing failure")

// PasswordHasher is the one-way hash plus constant-time compare capability.
// Every login attempt goes through Verify; there is no plaintext comparison
// path anywhere in the codebase.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash produces an opaque salted digest of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashing, err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. The comparison
// runs in time independent of where a mismatch occurs.
func (h *PasswordHasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
