package commands

import (
	"context"
	"errors"
	"log/slog"

	application "quill/contexts/identity-access/credential-service/application"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"
	"quill/contexts/identity-access/credential-service/ports"
)

const minPasswordLength = 8

type HashPasswordUseCase struct {
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

func (u HashPasswordUseCase) Execute(_ context.Context, password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domainerrors.ErrPasswordTooShort
	}
	hash, err := u.Hasher.Hash(password)
	if err != nil {
		application.ResolveLogger(u.Logger).Error("password hash failed",
			"event", "credential_password_hash_failed",
			"module", "identity-access/credential-service",
			"layer", "application",
			"error", err.Error(),
		)
		return "", err
	}
	return hash, nil
}

type VerifyPasswordUseCase struct {
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

// Execute returns false without error on a mismatch; errors are reserved for
// hasher failures.
func (u VerifyPasswordUseCase) Execute(_ context.Context, password string, hash string) (bool, error) {
	err := u.Hasher.Compare(hash, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domainerrors.ErrPasswordHashMismatched):
		return false, nil
	default:
		application.ResolveLogger(u.Logger).Error("password verify failed",
			"event", "credential_password_verify_failed",
			"module", "identity-access/credential-service",
			"layer", "application",
			"error", err.Error(),
		)
		return false, err
	}
}
