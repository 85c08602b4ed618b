package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fixora-app/fixora/internal/domain/user"
)

var _ user.PasswordHasher = (*BcryptPasswordHasher)(nil)

// BcryptPasswordHasher stores account passwords as bcrypt hashes.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for an out of
// range cost. Tests pass bcrypt.MinCost.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(out), nil
}

// Verify hides the bcrypt cause so a mismatch and a corrupt hash look alike.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}
