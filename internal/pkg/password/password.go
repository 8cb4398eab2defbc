// Package password wraps bcrypt hashing behind a small, tunable hasher.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted bcrypt hashes. Equal plaintexts never
// yield equal hashes; verification is constant-time.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given cost factor. Costs outside the
// bcrypt range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("password: plaintext must not be empty")
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt hash of a random string. Login compares
// against it when the username does not resolve, so the failure path costs
// the same as a real mismatch.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
