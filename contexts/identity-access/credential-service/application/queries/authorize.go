package queries

import (
	"context"
	"log/slog"

	application "quill/contexts/identity-access/credential-service/application"
	"quill/contexts/identity-access/credential-service/domain/entities"
	"quill/contexts/identity-access/credential-service/domain/services"
	identityv1 "quill/contracts/identity/v1"
)

// AuthorizeQuery is the input for one route-policy evaluation.
type AuthorizeQuery struct {
	Principal       identityv1.Principal
	Policy          entities.Policy
	TargetAccountID string
}

// AuthorizeUseCase applies a route policy. It never touches storage.
type AuthorizeUseCase struct {
	Logger *slog.Logger
}

func (u AuthorizeUseCase) Execute(_ context.Context, query AuthorizeQuery) error {
	err := services.PolicyEngine(query.Policy, query.Principal, query.TargetAccountID)
	if err != nil {
		application.ResolveLogger(u.Logger).Warn("route policy denied",
			"event", "credential_policy_denied",
			"module", "identity-access/credential-service",
			"layer", "application",
			"account_id", query.Principal.AccountID,
			"policy", string(query.Policy.Kind),
			"target_account_id", query.TargetAccountID,
			"error", err.Error(),
		)
	}
	return err
}
