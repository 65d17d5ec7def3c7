package commands

import (
	"context"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
)

type PromoteAccountCommand struct {
	Email string
}

// PromoteAccountUseCase grants the privileged flag. It is reachable from the
// operator CLI only; no HTTP route exposes it.
type PromoteAccountUseCase struct {
	Accounts ports.AccountRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (u PromoteAccountUseCase) Execute(ctx context.Context, cmd PromoteAccountCommand) (entities.Account, error) {
	account, err := u.Accounts.GetAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		return entities.Account{}, err
	}
	privileged := true
	account, err = u.Accounts.UpdateAccount(ctx, account.AccountID, entities.AccountPatch{
		Privileged: &privileged,
		UpdatedAt:  resolveNow(u.Clock),
	})
	if err != nil {
		return entities.Account{}, err
	}
	application.ResolveLogger(u.Logger).Info("account promoted",
		"event", "content_account_promoted",
		"module", "community-content/content-service",
		"layer", "application",
		"account_id", account.AccountID,
	)
	return account, nil
}
