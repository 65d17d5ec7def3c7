package ports

import (
	"context"
	"time"

	"quill/contexts/identity-access/credential-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// PasswordHasher is a one-way, salted, cost-parameterized hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash string, password string) error
}

// TokenCodec signs and verifies bearer tokens with the process-wide secret.
type TokenCodec interface {
	Encode(claims entities.TokenClaims) (string, error)
	// Decode fails with domain ErrInvalidToken on bad signature or malformed payload.
	Decode(token string) (entities.TokenClaims, error)
}

// RevocationList is consulted after a token decodes successfully.
// The default adapter never revokes anything.
type RevocationList interface {
	IsRevoked(ctx context.Context, claims entities.TokenClaims) (bool, error)
}
