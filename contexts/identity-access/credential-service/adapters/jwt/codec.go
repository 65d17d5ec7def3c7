package jwtadapter

import (
	"fmt"
	"strings"
	"time"

	"quill/contexts/identity-access/credential-service/domain/entities"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"

	"github.com/golang-jwt/jwt/v4"
)

// claims wire names are fixed: {"id": ..., "isAdmin": ...}.
type claims struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Codec implements ports.TokenCodec with HS256 JWTs.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, domainerrors.ErrSigningSecretRequired
	}
	return &Codec{
		secret: []byte(secret),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock swaps the time source used for exp validation.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) Encode(input entities.TokenClaims) (string, error) {
	registered := jwt.RegisteredClaims{}
	if !input.IssuedAt.IsZero() {
		registered.IssuedAt = jwt.NewNumericDate(input.IssuedAt)
	}
	if input.ExpiresAt != nil {
		registered.ExpiresAt = jwt.NewNumericDate(*input.ExpiresAt)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:               input.AccountID,
		IsAdmin:          input.Privileged,
		RegisteredClaims: registered,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(raw string) (entities.TokenClaims, error) {
	// exp is checked below against the injected clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	var parsed claims
	token, err := parser.ParseWithClaims(raw, &parsed, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return entities.TokenClaims{}, domainerrors.ErrInvalidToken
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return entities.TokenClaims{}, domainerrors.ErrInvalidToken
	}

	result := entities.TokenClaims{
		AccountID:  parsed.ID,
		Privileged: parsed.IsAdmin,
	}
	if parsed.IssuedAt != nil {
		result.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	if parsed.ExpiresAt != nil {
		expiresAt := parsed.ExpiresAt.Time.UTC()
		if !c.now().Before(expiresAt) {
			return entities.TokenClaims{}, domainerrors.ErrInvalidToken
		}
		result.ExpiresAt = &expiresAt
	}
	return result, nil
}
