package jwtadapter

import (
	"testing"
	"time"

	"quill/contexts/identity-access/credential-service/domain/entities"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTripWithoutExpiry(t *testing.T) {
	codec, err := NewCodec("secret-1")
	require.NoError(t, err)

	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := codec.Encode(entities.TokenClaims{AccountID: "acc-1", Privileged: true, IssuedAt: issuedAt})
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.AccountID)
	require.True(t, claims.Privileged)
	require.Equal(t, issuedAt, claims.IssuedAt)
	require.Nil(t, claims.ExpiresAt)
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	issuer, err := NewCodec("secret-1")
	require.NoError(t, err)
	verifier, err := NewCodec("secret-2")
	require.NoError(t, err)

	token, err := issuer.Encode(entities.TokenClaims{AccountID: "acc-1"})
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestCodecRejectsMalformedAndSubjectless(t *testing.T) {
	codec, err := NewCodec("secret-1")
	require.NoError(t, err)

	_, err = codec.Decode("not-a-jwt")
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	token, err := codec.Encode(entities.TokenClaims{})
	require.NoError(t, err)
	_, err = codec.Decode(token)
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestCodecRejectsOtherAlgorithms(t *testing.T) {
	codec, err := NewCodec("secret-1")
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"id": "acc-1"})
	signed, err := token.SignedString([]byte("secret-1"))
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestCodecEnforcesConfiguredExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	codec, err := NewCodec("secret-1")
	require.NoError(t, err)
	codec.WithClock(func() time.Time { return now })

	expiresAt := now.Add(time.Hour)
	token, err := codec.Encode(entities.TokenClaims{AccountID: "acc-1", IssuedAt: now, ExpiresAt: &expiresAt})
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = codec.Decode(token)
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("  ")
	require.ErrorIs(t, err, domainerrors.ErrSigningSecretRequired)
}
