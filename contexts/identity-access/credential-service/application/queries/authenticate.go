package queries

import (
	"context"
	"log/slog"
	"strings"

	application "quill/contexts/identity-access/credential-service/application"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"
	"quill/contexts/identity-access/credential-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

// AuthenticateQuery carries the raw Authorization header value.
type AuthenticateQuery struct {
	AuthorizationHeader string
}

// AuthenticateUseCase derives the caller principal from a bearer token.
type AuthenticateUseCase struct {
	Tokens      ports.TokenCodec
	Revocations ports.RevocationList
	Logger      *slog.Logger
}

func (u AuthenticateUseCase) Execute(ctx context.Context, query AuthenticateQuery) (identityv1.Principal, error) {
	logger := application.ResolveLogger(u.Logger)

	raw := strings.TrimSpace(query.AuthorizationHeader)
	if raw == "" {
		return identityv1.Anonymous, domainerrors.ErrMissingToken
	}
	scheme, token, found := strings.Cut(raw, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return identityv1.Anonymous, domainerrors.ErrInvalidToken
	}

	claims, err := u.Tokens.Decode(token)
	if err != nil {
		logger.Debug("token rejected",
			"event", "credential_token_rejected",
			"module", "identity-access/credential-service",
			"layer", "application",
			"error", err.Error(),
		)
		return identityv1.Anonymous, domainerrors.ErrInvalidToken
	}

	if u.Revocations != nil {
		revoked, err := u.Revocations.IsRevoked(ctx, claims)
		if err != nil {
			logger.Error("revocation lookup failed",
				"event", "credential_revocation_lookup_failed",
				"module", "identity-access/credential-service",
				"layer", "application",
				"account_id", claims.AccountID,
				"error", err.Error(),
			)
			return identityv1.Anonymous, err
		}
		if revoked {
			logger.Info("revoked token presented",
				"event", "credential_token_revoked",
				"module", "identity-access/credential-service",
				"layer", "application",
				"account_id", claims.AccountID,
			)
			return identityv1.Anonymous, domainerrors.ErrInvalidToken
		}
	}

	return identityv1.Principal{
		AccountID:  claims.AccountID,
		Privileged: claims.Privileged,
	}, nil
}
