package credential

import (
	"context"

	"quill/contexts/identity-access/credential-service/application/commands"
)

// Credentials exposes hashing and token issuance with the method set other
// modules declare in their own ports.
type Credentials struct {
	hash   commands.HashPasswordUseCase
	verify commands.VerifyPasswordUseCase
	issue  commands.IssueTokenUseCase
}

func (c Credentials) HashPassword(ctx context.Context, password string) (string, error) {
	return c.hash.Execute(ctx, password)
}

func (c Credentials) VerifyPassword(ctx context.Context, password string, hash string) (bool, error) {
	return c.verify.Execute(ctx, password, hash)
}

func (c Credentials) IssueToken(ctx context.Context, accountID string, privileged bool) (string, error) {
	return c.issue.Execute(ctx, commands.IssueTokenCommand{
		AccountID:  accountID,
		Privileged: privileged,
	})
}
