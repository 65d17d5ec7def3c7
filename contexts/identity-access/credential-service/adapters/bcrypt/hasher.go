package bcryptadapter

import (
	"errors"

	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the salt rounds used by the original accounts.
const DefaultCost = 10

// Hasher implements ports.PasswordHasher with bcrypt.
type Hasher struct {
	Cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{Cost: cost}
}

func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h Hasher) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return domainerrors.ErrPasswordHashMismatched
	}
	return err
}
