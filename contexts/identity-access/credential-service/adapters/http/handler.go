package httpadapter

import (
	"context"
	"log/slog"

	application "quill/contexts/identity-access/credential-service/application"
	"quill/contexts/identity-access/credential-service/application/queries"
	"quill/contexts/identity-access/credential-service/domain/entities"
	identityv1 "quill/contracts/identity/v1"
)

// Handler maps request-guard inputs to application queries.
type Handler struct {
	Authenticate queries.AuthenticateUseCase
	Authorize    queries.AuthorizeUseCase
	Logger       *slog.Logger
}

// GuardHandler authenticates (unless the policy is anonymous) and then
// authorizes the caller against the route policy.
func (h Handler) GuardHandler(
	ctx context.Context,
	authorizationHeader string,
	policy entities.Policy,
	targetAccountID string,
) (identityv1.Principal, error) {
	if !policy.RequiresAuthentication() {
		return identityv1.Anonymous, nil
	}

	principal, err := h.Authenticate.Execute(ctx, queries.AuthenticateQuery{
		AuthorizationHeader: authorizationHeader,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Debug("http guard authentication failed",
			"event", "credential_http_guard_unauthenticated",
			"module", "identity-access/credential-service",
			"layer", "transport",
			"policy", string(policy.Kind),
			"error", err.Error(),
		)
		return identityv1.Anonymous, err
	}

	if err := h.Authorize.Execute(ctx, queries.AuthorizeQuery{
		Principal:       principal,
		Policy:          policy,
		TargetAccountID: targetAccountID,
	}); err != nil {
		return principal, err
	}
	return principal, nil
}
