package memory

import (
	"context"
	"sync"
	"time"

	"quill/contexts/identity-access/credential-service/domain/entities"
)

// NoRevocations never revokes a token. It is the production default and keeps
// issued tokens valid for their whole (possibly unbounded) lifetime.
type NoRevocations struct{}

func (NoRevocations) IsRevoked(context.Context, entities.TokenClaims) (bool, error) {
	return false, nil
}

// RevocationStore revokes every token of an account issued before a cutoff.
// It is intended for tests and single-process development wiring.
type RevocationStore struct {
	mu      sync.RWMutex
	cutoffs map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{cutoffs: make(map[string]time.Time)}
}

// RevokeAccount invalidates tokens for accountID issued at or before cutoff.
func (s *RevocationStore) RevokeAccount(accountID string, cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs[accountID] = cutoff.UTC()
}

func (s *RevocationStore) IsRevoked(_ context.Context, claims entities.TokenClaims) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff, ok := s.cutoffs[claims.AccountID]
	if !ok {
		return false, nil
	}
	// Tokens without iat cannot prove they postdate the cutoff.
	if claims.IssuedAt.IsZero() {
		return true, nil
	}
	return !claims.IssuedAt.After(cutoff), nil
}
