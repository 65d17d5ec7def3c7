package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
)

// UpdateProfileCommand is a partial update; nil fields are left untouched.
type UpdateProfileCommand struct {
	AccountID string  `json:"-"`
	Username  *string `json:"username" validate:"omitempty,min=2,max=100"`
	Password  *string `json:"password" validate:"omitempty,min=8,maxbytes=72"`
	Bio       *string `json:"bio"`
}

type UpdateProfileUseCase struct {
	Accounts  ports.AccountRepository
	Passwords ports.PasswordHasher
	Validator ports.Validator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (u UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (entities.Account, error) {
	cmd.Username = trimmed(cmd.Username)
	cmd.Password = trimmed(cmd.Password)
	cmd.Bio = trimmed(cmd.Bio)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Account{}, err
	}

	if _, err := u.Accounts.GetAccount(ctx, cmd.AccountID); err != nil {
		return entities.Account{}, err
	}

	patch := entities.AccountPatch{
		Username:  cmd.Username,
		Bio:       cmd.Bio,
		UpdatedAt: resolveNow(u.Clock),
	}
	if cmd.Password != nil {
		hash, err := u.Passwords.HashPassword(ctx, *cmd.Password)
		if err != nil {
			return entities.Account{}, err
		}
		patch.PasswordHash = &hash
	}

	account, err := u.Accounts.UpdateAccount(ctx, cmd.AccountID, patch)
	if err != nil {
		return entities.Account{}, err
	}
	application.ResolveLogger(u.Logger).Info("profile updated",
		"event", "content_profile_updated",
		"module", "community-content/content-service",
		"layer", "application",
		"account_id", cmd.AccountID,
		"password_changed", cmd.Password != nil,
	)
	return account, nil
}
