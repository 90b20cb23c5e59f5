package auth

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt looks at. Longer passwords
// are cut to this length before hashing and before every comparison.
const MaxPasswordBytes = 72

// PasswordHasher wraps bcrypt at a fixed cost.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher returns a hasher for the given bcrypt cost. Costs below
// bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d exceeds %d", cost, bcrypt.MaxCost)
	}

	// a hash of a random password nobody knows; compared against when the
	// account does not exist so that path costs one bcrypt round as well
	secret, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generate dummy password: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether candidate matches the stored hash.
func (h *PasswordHasher) VerifyPassword(hash []byte, candidate string) bool {
	return bcrypt.CompareHashAndPassword(hash, passwordBytes(candidate)) == nil
}

// Burn runs a comparison against the dummy hash and always reports false.
func (h *PasswordHasher) Burn(candidate string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, passwordBytes(candidate))
	return false
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
