package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "quill/contexts/identity-access/credential-service/application"
	"quill/contexts/identity-access/credential-service/domain/entities"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"
	"quill/contexts/identity-access/credential-service/ports"
)

type IssueTokenCommand struct {
	AccountID  string
	Privileged bool
}

// IssueTokenUseCase signs a bearer token for an authenticated account.
// A non-positive TokenTTL issues tokens without an exp claim.
type IssueTokenUseCase struct {
	Tokens   ports.TokenCodec
	Clock    ports.Clock
	TokenTTL time.Duration
	Logger   *slog.Logger
}

func (u IssueTokenUseCase) Execute(ctx context.Context, cmd IssueTokenCommand) (string, error) {
	if strings.TrimSpace(cmd.AccountID) == "" {
		return "", domainerrors.ErrInvalidAccountID
	}

	logger := application.ResolveLogger(u.Logger)
	now := u.now()
	claims := entities.TokenClaims{
		AccountID:  cmd.AccountID,
		Privileged: cmd.Privileged,
		IssuedAt:   now,
	}
	if u.TokenTTL > 0 {
		expiresAt := now.Add(u.TokenTTL)
		claims.ExpiresAt = &expiresAt
	}

	token, err := u.Tokens.Encode(claims)
	if err != nil {
		logger.Error("token issue failed",
			"event", "credential_token_issue_failed",
			"module", "identity-access/credential-service",
			"layer", "application",
			"account_id", cmd.AccountID,
			"error", err.Error(),
		)
		return "", err
	}

	logger.Debug("token issued",
		"event", "credential_token_issued",
		"module", "identity-access/credential-service",
		"layer", "application",
		"account_id", cmd.AccountID,
		"privileged", cmd.Privileged,
		"expires", claims.ExpiresAt != nil,
	)
	return token, nil
}

func (u IssueTokenUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
