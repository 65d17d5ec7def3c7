package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
)

type RegisterAccountCommand struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,min=5,max=100,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

type RegisterAccountUseCase struct {
	Accounts            ports.AccountRepository
	Passwords           ports.PasswordHasher
	Validator           ports.Validator
	Clock               ports.Clock
	IDGenerator         ports.IDGenerator
	DefaultProfilePhoto string
	Logger              *slog.Logger
}

func (u RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountCommand) (entities.Account, error) {
	logger := application.ResolveLogger(u.Logger)
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Password = strings.TrimSpace(cmd.Password)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Account{}, err
	}

	if _, err := u.Accounts.GetAccountByEmail(ctx, cmd.Email); err == nil {
		return entities.Account{}, domainerrors.ErrAccountAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrAccountNotFound) {
		return entities.Account{}, err
	}

	hash, err := u.Passwords.HashPassword(ctx, cmd.Password)
	if err != nil {
		return entities.Account{}, err
	}
	accountID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Account{}, err
	}

	now := resolveNow(u.Clock)
	account := entities.Account{
		AccountID:    accountID,
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		ProfilePhoto: entities.Placeholder(u.DefaultProfilePhoto),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Accounts.CreateAccount(ctx, account); err != nil {
		return entities.Account{}, err
	}

	logger.Info("account registered",
		"event", "content_account_registered",
		"module", "community-content/content-service",
		"layer", "application",
		"account_id", accountID,
	)
	return account, nil
}
