package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies credentials with bcrypt. Hashing is
// deliberately slow (cost tuned to ~100ms), so concurrent hashes are limited
// by a slot pool to keep token validation and read paths responsive under a
// registration/login burst. Safe for concurrent use.
type PasswordHasher struct {
	cost  int
	slots chan struct{}
}

// NewPasswordHasher returns a hasher with the given bcrypt cost and at most
// maxConcurrent simultaneous hash computations. Out-of-range values fall back
// to bcrypt.DefaultCost and a single slot.
func NewPasswordHasher(cost int, maxConcurrent int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		cost:  cost,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Hash produces a salted one-way hash of password. The salt is generated per
// call and embedded in the output string.
func (h *PasswordHasher) Hash(password string) (string, error) {
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Comparison is constant time
// relative to the hash length. A malformed stored hash fails closed: the
// result is false, never an error that could be mistaken for a match.
func (h *PasswordHasher) Verify(password string, hash string) bool {
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
